package core

import (
	"fmt"
	"sync"
	"time"

	"PurePursuit/internal/device"
	"PurePursuit/internal/geo"
	"PurePursuit/internal/model"
	"PurePursuit/internal/parser"
	"PurePursuit/internal/util"
)

// System manages the lifecycle of the follower and its collaborators
// (GPS source, monitor server, optional GPS simulator). It loads the YAML
// configuration and constructs objects accordingly.
type System struct {
	cfg      *model.Config
	Follower *Follower
	Monitor  *Monitor

	socat   *util.SocatManager
	simStop chan struct{}
	simWg   sync.WaitGroup

	started   bool
	startLock sync.Mutex
}

// simulatedDeviceSuffix is appended to the configured GPS device path to
// name the writing end of the virtual serial pair.
const simulatedDeviceSuffix = ".sim"

// NewSystem reads the YAML configuration at cfgPath and creates a System
// instance: parser by wire format, follower, monitor, and the initial
// path loaded from the configured waypoint file.
func NewSystem(cfgPath string) (*System, error) {
	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}

	p, ok := parser.New(cfg.Follower.WireFormat)
	if !ok {
		return nil, fmt.Errorf("unknown wire format %q", cfg.Follower.WireFormat)
	}

	s := &System{cfg: cfg}

	// a simulated GPS needs its virtual serial pair to exist before the
	// follower opens the reading end
	if cfg.GPS.Simulate && cfg.GPS.Device != "" {
		s.socat = util.NewSocatManager()
		if err := s.socat.CreatePair(cfg.GPS.Device, cfg.GPS.Device+simulatedDeviceSuffix); err != nil {
			return nil, fmt.Errorf("gps simulation: %w", err)
		}
		// give socat a moment to create the pty links
		time.Sleep(300 * time.Millisecond)
	}

	s.Follower = NewFollower(*cfg, p)

	if cfg.Follower.PathFile != "" {
		path, err := parser.LoadPath(cfg.Follower.PathFile)
		if err != nil {
			return nil, fmt.Errorf("load path file: %w", err)
		}
		s.Follower.SetPath(path)
	}

	if cfg.Monitor.Addr != "" {
		s.Monitor = NewMonitor(cfg.Monitor.Addr, s.Follower)
		s.Follower.Monitor = s.Monitor
	}

	return s, nil
}

// StartAll starts the monitor server, the GPS simulator when configured,
// and the follower control loop.
func (s *System) StartAll() error {
	s.startLock.Lock()
	defer s.startLock.Unlock()
	if s.started {
		return nil
	}

	if s.Monitor != nil {
		go s.Monitor.Start()
	}

	if s.cfg.GPS.Simulate && s.cfg.GPS.Device != "" {
		s.simStop = make(chan struct{})
		sim := device.NewGpsDevice(s.cfg.GPS.Device+simulatedDeviceSuffix, s.cfg.GPS.Baud)
		proj := geo.Projector{OriginLat: s.cfg.GPS.OriginLat, OriginLon: s.cfg.GPS.OriginLon}
		path := s.followerPath()
		speed := s.cfg.Follower.CruiseSpeed
		s.simWg.Add(1)
		go func() {
			defer s.simWg.Done()
			if err := sim.Simulate(s.simStop, path, proj, speed, time.Second/5); err != nil {
				util.Error("gps simulator: %v", err)
			}
		}()
	}

	if err := s.Follower.Start(); err != nil {
		return err
	}

	s.started = true
	util.Info("system started: follower %s", s.cfg.Follower.VehicleID)
	return nil
}

// StopAll stops the follower, the simulator, the monitor and the virtual
// serial pair, in that order.
func (s *System) StopAll() {
	s.startLock.Lock()
	defer s.startLock.Unlock()
	if !s.started {
		return
	}

	s.Follower.Stop()
	if s.simStop != nil {
		close(s.simStop)
		s.simWg.Wait()
	}
	if s.Monitor != nil {
		s.Monitor.Stop()
	}
	if s.socat != nil {
		s.socat.Cleanup()
	}
	s.started = false
	util.Info("system stopped")
}

// followerPath returns the follower's current path snapshot.
func (s *System) followerPath() model.Path {
	s.Follower.mu.Lock()
	defer s.Follower.mu.Unlock()
	return s.Follower.path
}
