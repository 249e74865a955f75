// Package geo provides the plane geometry helpers used by the pursuit
// tracker: distances, line equations, vector rotation and the rigid
// transform between the map frame and the vehicle frame.
package geo

import (
	"errors"
	"math"

	"PurePursuit/internal/model"
)

// ErrDegenerateLine is returned when two coincident points are given, so
// no unique line passes through them.
var ErrDegenerateLine = errors.New("degenerate line: points coincide")

// PlaneDistance returns the distance between p and q projected onto the
// horizontal plane. The vertical axis is ignored.
func PlaneDistance(p, q model.Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// LineEquation derives a, b, c with a*x + b*y + c = 0 through p1 and p2.
func LineEquation(p1, p2 model.Point) (a, b, c float64, err error) {
	a = p2.Y - p1.Y
	b = -(p2.X - p1.X)
	if a == 0 && b == 0 {
		return 0, 0, 0, ErrDegenerateLine
	}
	c = -a*p1.X - b*p1.Y
	return a, b, c, nil
}

// DistancePointToLine returns the perpendicular distance from p to the
// line a*x + b*y + c = 0.
func DistancePointToLine(p model.Point, a, b, c float64) float64 {
	return math.Abs(a*p.X+b*p.Y+c) / math.Sqrt(a*a+b*b)
}

// RotateVector rotates the horizontal vector v about the vertical axis by
// deg degrees, counter-clockwise for positive angles.
func RotateVector(v model.Point, deg float64) model.Point {
	sin, cos := math.Sincos(deg * math.Pi / 180.0)
	return model.Point{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
		Z: v.Z,
	}
}

// ToLocalFrame transforms a map-frame point into the frame centred at
// pose, with +X along the vehicle heading and +Y to its left.
func ToLocalFrame(p model.Point, pose model.Pose) model.Point {
	dx := p.X - pose.Position.X
	dy := p.Y - pose.Position.Y
	sin, cos := math.Sincos(pose.Yaw)
	return model.Point{
		X: cos*dx + sin*dy,
		Y: -sin*dx + cos*dy,
		Z: p.Z - pose.Position.Z,
	}
}

// FromLocalFrame is the inverse of ToLocalFrame: it maps a vehicle-frame
// point back into the map frame.
func FromLocalFrame(p model.Point, pose model.Pose) model.Point {
	sin, cos := math.Sincos(pose.Yaw)
	return model.Point{
		X: pose.Position.X + cos*p.X - sin*p.Y,
		Y: pose.Position.Y + sin*p.X + cos*p.Y,
		Z: pose.Position.Z + p.Z,
	}
}
