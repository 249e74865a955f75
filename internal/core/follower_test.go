package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PurePursuit/internal/model"
	"PurePursuit/internal/parser"
	"PurePursuit/internal/pursuit"
)

// fakeBroadcaster records every line handed to Broadcast.
type fakeBroadcaster struct {
	lines []string
}

func (b *fakeBroadcaster) Broadcast(line string) { b.lines = append(b.lines, line) }

func testConfig() model.Config {
	var cfg model.Config
	cfg.Follower.VehicleID = "VEH_01"
	cfg.Follower.RateHz = 10
	cfg.Follower.CruiseSpeed = 1.5
	cfg.Follower.HoldOnFailure = 1
	cfg.Follower.Lookahead = model.LookaheadConfig{
		Distance:            7,
		MinimumDistance:     0.5,
		LinearInterpolation: true,
	}
	return cfg
}

func straightPath() model.Path {
	return model.Path{
		{Position: model.Point{X: 0}},
		{Position: model.Point{X: 5}},
		{Position: model.Point{X: 10}},
		{Position: model.Point{X: 15, Y: 5}},
	}
}

func TestFollower_TickWithoutPose(t *testing.T) {
	f := NewFollower(testConfig(), parser.NewCSVParser())

	cmd := f.Tick()
	assert.False(t, cmd.Valid)
	assert.Equal(t, "VEH_01", cmd.VehicleID)

	state := f.LastState()
	assert.Equal(t, -1, state.NextWaypointIndex)
	assert.Equal(t, "no pose fix", state.Error)
}

func TestFollower_TickSuccess(t *testing.T) {
	f := NewFollower(testConfig(), parser.NewCSVParser())
	mon := &fakeBroadcaster{}
	f.Monitor = mon
	f.SetPath(straightPath())
	f.SetPose(model.Pose{})

	cmd := f.Tick()
	require.True(t, cmd.Valid)
	assert.Equal(t, 2, cmd.TargetIndex)
	assert.InDelta(t, 0, cmd.Kappa, 1e-9)
	assert.Equal(t, 1.5, cmd.Linear)
	assert.InDelta(t, 0, cmd.Angular, 1e-9)
	assert.NotEmpty(t, cmd.Timestamp)

	state := f.LastState()
	assert.Equal(t, 2, state.NextWaypointIndex)
	assert.True(t, state.Interpolated)
	assert.InDelta(t, 7, state.NextTargetPosition.X, 1e-9)
	assert.Empty(t, state.Error)

	// the encoded line reached the monitor hub
	require.Len(t, mon.lines, 1)
	decoded, err := parser.NewCSVParser().DecodeCommand(mon.lines[0])
	require.NoError(t, err)
	assert.Equal(t, cmd.TargetIndex, decoded.TargetIndex)
}

func TestFollower_WaypointVelocityOverridesCruise(t *testing.T) {
	path := straightPath()
	path[2].Velocity = 0.8

	f := NewFollower(testConfig(), parser.NewCSVParser())
	f.SetPath(path)
	f.SetPose(model.Pose{})

	cmd := f.Tick()
	require.True(t, cmd.Valid)
	assert.Equal(t, 0.8, cmd.Linear)
}

func TestFollower_HoldThenStop(t *testing.T) {
	f := NewFollower(testConfig(), parser.NewCSVParser())
	f.SetPath(straightPath())
	f.SetPose(model.Pose{})

	good := f.Tick()
	require.True(t, good.Valid)

	// lose the path: the first failed tick resends the held command, the
	// second one commands a stop
	f.SetPath(nil)

	held := f.Tick()
	assert.True(t, held.Valid)
	assert.Equal(t, good.Kappa, held.Kappa)
	assert.Equal(t, good.TargetIndex, held.TargetIndex)

	stop := f.Tick()
	assert.False(t, stop.Valid)
	assert.Equal(t, 0.0, stop.Linear)
	assert.Equal(t, 0.0, stop.Angular)

	assert.Equal(t, pursuit.ErrPathLost.Error(), f.LastState().Error)
}

func TestFollower_RecoveryResetsMisses(t *testing.T) {
	f := NewFollower(testConfig(), parser.NewCSVParser())
	f.SetPath(straightPath())
	f.SetPose(model.Pose{})

	require.True(t, f.Tick().Valid)

	f.SetPath(nil)
	assert.True(t, f.Tick().Valid) // held

	f.SetPath(straightPath())
	require.True(t, f.Tick().Valid)

	// the hold budget is full again after a good tick
	f.SetPath(nil)
	assert.True(t, f.Tick().Valid)
	assert.False(t, f.Tick().Valid)
}

func TestFollower_NoValidCurveStops(t *testing.T) {
	f := NewFollower(testConfig(), parser.NewCSVParser())
	f.Hold = 0
	f.SetPath(model.Path{{Position: model.Point{X: 0.1}}, {Position: model.Point{X: 0.2}}})
	f.SetPose(model.Pose{})

	cmd := f.Tick()
	assert.False(t, cmd.Valid)
	assert.Contains(t, f.LastState().Error, pursuit.ErrNoValidCurve.Error())
}

func TestFollower_SetLookaheadTakesEffect(t *testing.T) {
	f := NewFollower(testConfig(), parser.NewCSVParser())
	f.SetPath(straightPath())
	f.SetPose(model.Pose{})

	require.Equal(t, 2, f.Tick().TargetIndex)

	cfg := f.Lookahead()
	cfg.Distance = 3
	f.SetLookahead(cfg)
	assert.Equal(t, 1, f.Tick().TargetIndex)
}
