// Package model also defines the configuration structures used to
// initialize the follower. The root structure is loaded from
// configs/config.yml.
package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the root structure loaded from configs/config.yml.
type Config struct {
	Follower FollowerConfig `yaml:"follower"`
	GPS      GpsConfig      `yaml:"gps"`
	Command  CommandConfig  `yaml:"command"`
	Monitor  MonitorConfig  `yaml:"monitor"`
}

// FollowerConfig defines the control loop parameters for a single vehicle.
type FollowerConfig struct {
	VehicleID     string          `yaml:"vehicle_id"`
	RateHz        float64         `yaml:"rate_hz"`         // control tick frequency
	CruiseSpeed   float64         `yaml:"cruise_speed"`    // m/s, used when a waypoint has no velocity
	HoldOnFailure int             `yaml:"hold_on_failure"` // ticks to resend the last valid command before stopping
	WireFormat    string          `yaml:"wire_format"`     // command encoding (csv/json)
	PathFile      string          `yaml:"path_file"`       // waypoint file loaded at startup
	Lookahead     LookaheadConfig `yaml:"lookahead"`
}

// LookaheadConfig holds the target selection parameters. It may be
// replaced between ticks via the monitor API; the follower only ever
// reads a copy taken at the start of a tick.
type LookaheadConfig struct {
	Distance            float64 `yaml:"distance" json:"distance"`
	MinimumDistance     float64 `yaml:"minimum_distance" json:"minimum_distance"`
	LinearInterpolation bool    `yaml:"linear_interpolation" json:"linear_interpolation"`
}

// GpsConfig defines the pose source. When Simulate is true a virtual
// serial pair is created and synthetic NMEA is generated along the path.
type GpsConfig struct {
	Device    string  `yaml:"device"`
	Baud      int     `yaml:"baud"`
	OriginLat float64 `yaml:"origin_lat"` // map frame origin, decimal degrees
	OriginLon float64 `yaml:"origin_lon"`
	Simulate  bool    `yaml:"simulate"`
}

// CommandConfig defines the serial uplink commands are written to.
// An empty device disables the uplink; commands are still broadcast.
type CommandConfig struct {
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`
}

// MonitorConfig defines the HTTP/websocket monitor server address.
// Empty address disables the server.
type MonitorConfig struct {
	Addr string `yaml:"addr"`
}

// LoadConfig reads the YAML configuration, fills defaults and validates it.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// applyDefaults fills zero-valued fields with working defaults.
func (c *Config) applyDefaults() {
	if c.Follower.VehicleID == "" {
		c.Follower.VehicleID = "VEH_01"
	}
	if c.Follower.RateHz == 0 {
		c.Follower.RateHz = 10
	}
	if c.Follower.CruiseSpeed == 0 {
		c.Follower.CruiseSpeed = 1.0
	}
	if c.Follower.WireFormat == "" {
		c.Follower.WireFormat = "csv"
	}
	if c.Follower.Lookahead.Distance == 0 {
		c.Follower.Lookahead.Distance = 4.0
	}
	if c.Follower.Lookahead.MinimumDistance == 0 {
		c.Follower.Lookahead.MinimumDistance = 0.5
	}
	if c.GPS.Baud == 0 {
		c.GPS.Baud = 9600
	}
	if c.Command.Baud == 0 {
		c.Command.Baud = 9600
	}
}

// Validate checks the configuration for values the follower cannot run with.
func (c *Config) Validate() error {
	if c.Follower.RateHz <= 0 {
		return fmt.Errorf("rate_hz must be positive, got %v", c.Follower.RateHz)
	}
	if c.Follower.CruiseSpeed < 0 {
		return fmt.Errorf("cruise_speed must be non-negative, got %v", c.Follower.CruiseSpeed)
	}
	if c.Follower.HoldOnFailure < 0 {
		return fmt.Errorf("hold_on_failure must be non-negative, got %d", c.Follower.HoldOnFailure)
	}
	switch c.Follower.WireFormat {
	case "csv", "json":
	default:
		return fmt.Errorf("unknown wire_format %q", c.Follower.WireFormat)
	}
	return c.Follower.Lookahead.Validate()
}

// Validate checks the lookahead parameters. It is called both at startup
// and on every runtime parameter update.
func (l LookaheadConfig) Validate() error {
	if l.Distance <= 0 {
		return fmt.Errorf("lookahead distance must be positive, got %v", l.Distance)
	}
	if l.MinimumDistance <= 0 {
		return fmt.Errorf("minimum lookahead distance must be positive, got %v", l.MinimumDistance)
	}
	if l.MinimumDistance > l.Distance {
		return fmt.Errorf("minimum lookahead %v exceeds lookahead %v", l.MinimumDistance, l.Distance)
	}
	return nil
}
