// Package core contains the runtime and orchestration layer for the
// waypoint follower. It defines the Follower control loop, the Monitor
// server and the System type that manages their lifecycle.
package core

import (
	"errors"
	"log"
	"math"
	"sync"
	"time"

	"PurePursuit/internal/device"
	"PurePursuit/internal/geo"
	"PurePursuit/internal/model"
	"PurePursuit/internal/parser"
	"PurePursuit/internal/pursuit"
)

// Broadcaster receives every encoded command line, e.g. the monitor hub.
type Broadcaster interface {
	Broadcast(line string)
}

// Follower runs the pure pursuit control loop: it keeps the latest pose
// and path snapshot, computes a steering command every tick and publishes
// it to the serial uplink and the monitor.
//
// Pose, path and lookahead parameters are replaced wholesale through the
// setters; the tick loop copies them under the mutex before computing, so
// the pursuit core always sees an immutable snapshot.
type Follower struct {
	ID       string
	Uplink   device.Device
	Gps      *device.GpsDevice
	Parser   parser.Parser
	Interval time.Duration
	Cruise   float64
	Hold     int // failed ticks to resend the last valid command before stopping

	Monitor Broadcaster

	proj geo.Projector

	mu        sync.Mutex
	pose      model.Pose
	hasPose   bool
	path      model.Path
	lookahead model.LookaheadConfig
	lastCmd   model.SteeringCommand
	lastState model.TrackingState
	misses    int

	stop   chan struct{}
	wg     sync.WaitGroup
	gpsFn  func()
	closed sync.Once
}

// NewFollower constructs a Follower from configuration. The command
// uplink and GPS device are optional; a missing uplink only disables the
// serial output, and the pose can be injected directly (simulation,
// tests) via SetPose.
func NewFollower(cfg model.Config, p parser.Parser) *Follower {
	f := &Follower{
		ID:        cfg.Follower.VehicleID,
		Parser:    p,
		Interval:  time.Duration(float64(time.Second) / cfg.Follower.RateHz),
		Cruise:    cfg.Follower.CruiseSpeed,
		Hold:      cfg.Follower.HoldOnFailure,
		proj:      geo.Projector{OriginLat: cfg.GPS.OriginLat, OriginLon: cfg.GPS.OriginLon},
		lookahead: cfg.Follower.Lookahead,
		stop:      make(chan struct{}),
	}
	if cfg.Command.Device != "" {
		dev, err := device.NewSerialDevice(cfg.Command.Device, cfg.Command.Baud)
		if err != nil {
			log.Printf("follower %s: command uplink unavailable: %v", f.ID, err)
		} else {
			f.Uplink = dev
		}
	}
	if cfg.GPS.Device != "" {
		f.Gps = device.NewGpsDevice(cfg.GPS.Device, cfg.GPS.Baud)
	}
	return f
}

// SetPath replaces the reference path wholesale.
func (f *Follower) SetPath(path model.Path) {
	f.mu.Lock()
	f.path = path
	f.mu.Unlock()
	log.Printf("follower %s: path replaced (%d waypoints)", f.ID, len(path))
}

// SetPose replaces the pose snapshot used by the next tick.
func (f *Follower) SetPose(pose model.Pose) {
	f.mu.Lock()
	f.pose = pose
	f.hasPose = true
	f.mu.Unlock()
}

// SetLookahead replaces the lookahead parameters between ticks. The
// caller validates them first.
func (f *Follower) SetLookahead(cfg model.LookaheadConfig) {
	f.mu.Lock()
	f.lookahead = cfg
	f.mu.Unlock()
	log.Printf("follower %s: lookahead updated: %+v", f.ID, cfg)
}

// Lookahead returns the current lookahead parameters.
func (f *Follower) Lookahead() model.LookaheadConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lookahead
}

// LastCommand returns the most recently published command.
func (f *Follower) LastCommand() model.SteeringCommand {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastCmd
}

// LastState returns the diagnostic state of the most recent tick.
func (f *Follower) LastState() model.TrackingState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastState
}

// Start begins the GPS reader (if configured) and the control loop.
func (f *Follower) Start() error {
	if f.Gps != nil {
		ch := make(chan model.GpsFix, 5)
		stopGps, err := f.Gps.Read(ch)
		if err != nil {
			log.Printf("follower %s: gps start err: %v", f.ID, err)
		} else {
			log.Printf("follower %s: gps start: success", f.ID)
			f.gpsFn = stopGps
			f.wg.Add(1)
			go func() {
				defer f.wg.Done()
				f.consumeFixes(ch)
			}()
		}
	}

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		ticker := time.NewTicker(f.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-f.stop:
				return
			case <-ticker.C:
				f.Tick()
			}
		}
	}()
	return nil
}

// consumeFixes folds incoming GPS fixes into the pose snapshot. Heading
// comes from the RMC course when present, otherwise from the displacement
// since the previous fix once the vehicle has moved far enough to make
// that direction meaningful.
func (f *Follower) consumeFixes(ch <-chan model.GpsFix) {
	const headingMinTravel = 0.05 // metres

	var prev model.Point
	havePrev := false
	yaw := 0.0
	for fix := range ch {
		pos := f.proj.ToLocal(fix)
		switch {
		case fix.HasCourse:
			yaw = geo.YawFromCourse(fix.CourseDeg)
		case havePrev && geo.PlaneDistance(prev, pos) > headingMinTravel:
			yaw = math.Atan2(pos.Y-prev.Y, pos.X-prev.X)
		}
		prev = pos
		havePrev = true
		f.SetPose(model.Pose{Position: pos, Yaw: yaw})
	}
}

// Tick runs one control cycle and returns the published command.
func (f *Follower) Tick() model.SteeringCommand {
	f.mu.Lock()
	pose := f.pose
	hasPose := f.hasPose
	path := f.path
	lookahead := f.lookahead
	f.mu.Unlock()

	var cmd model.SteeringCommand
	var state model.TrackingState

	if !hasPose {
		state = model.TrackingState{NextWaypointIndex: -1, Error: "no pose fix"}
		cmd = f.fallbackCommand()
	} else if res, err := pursuit.ComputeCurvature(path, pose, lookahead); err != nil {
		state = model.TrackingState{NextWaypointIndex: res.WaypointIndex, Error: err.Error()}
		if !errors.Is(err, pursuit.ErrNoValidCurve) {
			log.Printf("follower %s: %v", f.ID, err)
		}
		cmd = f.fallbackCommand()
	} else {
		state = model.TrackingState{
			NextWaypointIndex:  res.WaypointIndex,
			NextTargetPosition: res.Target,
			Interpolated:       res.Kind == pursuit.TargetInterpolated,
		}
		v := f.Cruise
		if wv := path[res.WaypointIndex].Velocity; wv > 0 {
			v = wv
		}
		cmd = model.SteeringCommand{
			VehicleID:   f.ID,
			Valid:       true,
			Kappa:       res.Kappa,
			Linear:      v,
			Angular:     v * res.Kappa,
			TargetIndex: res.WaypointIndex,
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}
		f.mu.Lock()
		f.misses = 0
		f.mu.Unlock()
	}

	f.mu.Lock()
	f.lastCmd = cmd
	f.lastState = state
	f.mu.Unlock()

	f.publish(cmd)
	return cmd
}

// fallbackCommand decides what to send on a failed tick: resend the last
// valid command for up to Hold ticks, then command a stop.
func (f *Follower) fallbackCommand() model.SteeringCommand {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.misses++
	if f.misses <= f.Hold && f.lastCmd.Valid {
		held := f.lastCmd
		held.Timestamp = time.Now().UTC().Format(time.RFC3339)
		return held
	}
	return model.SteeringCommand{
		VehicleID: f.ID,
		Valid:     false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// publish encodes the command and hands it to the uplink and the monitor.
func (f *Follower) publish(cmd model.SteeringCommand) {
	line, err := f.Parser.EncodeCommand(cmd)
	if err != nil {
		log.Printf("follower %s: encode command err: %v", f.ID, err)
		return
	}
	if f.Uplink != nil {
		if err := f.Uplink.WriteLine(line); err != nil {
			log.Printf("follower %s: uplink write err: %v", f.ID, err)
		}
	}
	if f.Monitor != nil {
		f.Monitor.Broadcast(line)
	}
}

// Stop stops the control loop, the GPS provider and closes the uplink.
func (f *Follower) Stop() {
	f.closed.Do(func() { close(f.stop) })
	if f.gpsFn != nil {
		f.gpsFn()
	}
	if f.Uplink != nil {
		_ = f.Uplink.Close()
	}
	f.wg.Wait()
}
