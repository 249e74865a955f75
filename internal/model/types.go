// Package model defines shared data structures for the waypoint follower:
// map-frame geometry, the reference path, GPS fixes and the steering
// command produced each control tick.
package model

// Point is a position in the fixed map frame, in metres.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Pose is the vehicle position and heading in the map frame.
// Yaw is in radians, counter-clockwise from the +X axis.
type Pose struct {
	Position Point   `json:"position"`
	Yaw      float64 `json:"yaw"`
}

// Waypoint is one point of the reference path. Velocity is the target
// speed in m/s when passing the waypoint; zero means "use cruise speed".
type Waypoint struct {
	Position Point   `json:"position"`
	Velocity float64 `json:"velocity,omitempty"`
}

// Path is the ordered waypoint sequence. A path is always replaced
// wholesale, never mutated in place, so a snapshot taken at the start of
// a tick stays valid for the whole tick.
type Path []Waypoint

// GpsFix is a single parsed NMEA position report.
type GpsFix struct {
	Lat       float64
	Lon       float64
	Altitude  float64
	SpeedMps  float64
	CourseDeg float64 // course over ground, degrees clockwise from north
	HasCourse bool
}

// SteeringCommand is the per-tick output sent to the drive controller.
// Kappa is the signed curvature (1/m, positive steers left); Linear and
// Angular form the equivalent twist at the commanded speed.
type SteeringCommand struct {
	VehicleID   string  `json:"vehicle_id"`
	Valid       bool    `json:"valid"`
	Kappa       float64 `json:"kappa"`
	Linear      float64 `json:"linear"`
	Angular     float64 `json:"angular"`
	TargetIndex int     `json:"target_index"`
	Timestamp   string  `json:"timestamp"`
}

// TrackingState is the diagnostic snapshot retained after every tick.
// NextWaypointIndex is -1 when no target could be selected; the target
// position is only meaningful when the tick succeeded.
type TrackingState struct {
	NextWaypointIndex  int    `json:"next_waypoint_index"`
	NextTargetPosition Point  `json:"next_target_position"`
	Interpolated       bool   `json:"interpolated"`
	Error              string `json:"error,omitempty"`
}
