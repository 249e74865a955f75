package pursuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PurePursuit/internal/geo"
	"PurePursuit/internal/model"
)

func TestInterpolateTarget_IndexOutOfBounds(t *testing.T) {
	path := model.Path{wp(0, 0), wp(5, 0)}

	_, err := InterpolateTarget(path, -1, model.Pose{}, 5)
	assert.ErrorIs(t, err, ErrPathLost)

	_, err = InterpolateTarget(path, 2, model.Pose{}, 5)
	assert.ErrorIs(t, err, ErrPathLost)
}

func TestInterpolateTarget_EndpointsReturnedRaw(t *testing.T) {
	path := model.Path{wp(0, 0), wp(5, 0), wp(10, 0)}

	got, err := InterpolateTarget(path, 0, model.Pose{}, 5)
	require.NoError(t, err)
	assert.Equal(t, model.Point{}, got)

	got, err = InterpolateTarget(path, 2, model.Pose{}, 5)
	require.NoError(t, err)
	assert.Equal(t, model.Point{X: 10}, got)
}

func TestInterpolateTarget_OnCircleAndOnSegment(t *testing.T) {
	path := model.Path{wp(0, 0), wp(5, 0), wp(10, 0), wp(15, 5)}
	pose := model.Pose{}
	lookahead := 7.0

	got, err := InterpolateTarget(path, 2, pose, lookahead)
	require.NoError(t, err)

	assert.InDelta(t, 7, got.X, 1e-9)
	assert.InDelta(t, 0, got.Y, 1e-9)

	// target sits on the lookahead circle and on the segment line
	assert.InDelta(t, lookahead, geo.PlaneDistance(got, pose.Position), 1e-5)
	a, b, c, err := geo.LineEquation(path[1].Position, path[2].Position)
	require.NoError(t, err)
	assert.InDelta(t, 0, a*got.X+b*got.Y+c, 1e-5)
}

func TestInterpolateTarget_ForwardIntersectionPreferred(t *testing.T) {
	// both intersections lie inside the segment; the one forward along the
	// direction of travel wins
	path := model.Path{wp(-5, 0), wp(0, 0), wp(20, 0), wp(30, 0)}
	pose := model.Pose{Position: model.Point{X: 10}}

	got, err := InterpolateTarget(path, 2, pose, 5)
	require.NoError(t, err)
	assert.InDelta(t, 15, got.X, 1e-9)
	assert.InDelta(t, 0, got.Y, 1e-9)
}

func TestInterpolateTarget_TangentCircle(t *testing.T) {
	// perpendicular distance to the segment line is exactly the lookahead,
	// so the foot of the perpendicular is the unique intersection
	path := model.Path{wp(-5, 7), wp(5, 7), wp(15, 7)}
	pose := model.Pose{}

	got, err := InterpolateTarget(path, 1, pose, 7)
	require.NoError(t, err)
	assert.InDelta(t, 0, got.X, 1e-9)
	assert.InDelta(t, 7, got.Y, 1e-9)
}

func TestInterpolateTarget_DegenerateSegment(t *testing.T) {
	path := model.Path{wp(0, 0), wp(3, 3), wp(3, 3), wp(9, 9)}

	_, err := InterpolateTarget(path, 2, model.Pose{}, 5)
	assert.ErrorIs(t, err, geo.ErrDegenerateLine)
}

func TestInterpolateTarget_LineOutOfRange(t *testing.T) {
	// the segment line runs 20 m away from the vehicle, far beyond the
	// lookahead radius
	path := model.Path{wp(0, 0), wp(0, 20), wp(10, 20), wp(20, 20)}

	_, err := InterpolateTarget(path, 2, model.Pose{}, 7)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestInterpolateTarget_NoIntersectionOnSegment(t *testing.T) {
	// the circle crosses the segment line at x=3 and x=17, both farther
	// from the segment end at x=1 than the 1 m segment length
	path := model.Path{wp(-1, 0), wp(0, 0), wp(1, 0), wp(2, 0)}
	pose := model.Pose{Position: model.Point{X: 10}}

	_, err := InterpolateTarget(path, 2, pose, 7)
	assert.ErrorIs(t, err, ErrNoIntersection)
}

func TestInterpolateTarget_KeepsVehicleZ(t *testing.T) {
	path := model.Path{wp(0, 0), wp(5, 0), wp(10, 0), wp(15, 0)}
	pose := model.Pose{Position: model.Point{Z: 2.5}}

	got, err := InterpolateTarget(path, 2, pose, 7)
	require.NoError(t, err)
	assert.Equal(t, 2.5, got.Z)
}
