package pursuit

import (
	"math"

	"PurePursuit/internal/geo"
	"PurePursuit/internal/model"
)

// footTolerance bounds the line-equation residual when choosing between
// the two candidate feet of the perpendicular.
const footTolerance = 1e-5

// InterpolateTarget computes the point where the lookahead circle around
// the vehicle crosses the path segment ending at waypoint idx. The
// segment runs from path[idx-1] to path[idx]; when idx is the first or
// last index there is no preceding segment to cut and the waypoint
// position is returned as is.
//
// When the circle crosses the segment line twice, the intersection lying
// inside the segment is taken, preferring the one forward along the
// direction of travel. When the circle is exactly tangent to the line the
// foot of the perpendicular is the unique target.
func InterpolateTarget(path model.Path, idx int, pose model.Pose, lookahead float64) (model.Point, error) {
	if idx < 0 || idx >= len(path) {
		return model.Point{}, ErrPathLost
	}
	if idx == 0 || idx == len(path)-1 {
		return path[idx].Position, nil
	}

	start := path[idx-1].Position
	end := path[idx].Position

	a, b, c, err := geo.LineEquation(start, end)
	if err != nil {
		return model.Point{}, err
	}

	d := geo.DistancePointToLine(pose.Position, a, b, c)
	if d > lookahead {
		return model.Point{}, ErrOutOfRange
	}

	// unit direction of the segment and its two unit normals
	length := geo.PlaneDistance(start, end)
	unit := model.Point{X: (end.X - start.X) / length, Y: (end.Y - start.Y) / length}
	w1 := geo.RotateVector(unit, 90)
	w2 := geo.RotateVector(unit, -90)

	h1 := model.Point{
		X: pose.Position.X + d*w1.X,
		Y: pose.Position.Y + d*w1.Y,
		Z: pose.Position.Z,
	}
	h2 := model.Point{
		X: pose.Position.X + d*w2.X,
		Y: pose.Position.Y + d*w2.Y,
		Z: pose.Position.Z,
	}

	// keep whichever foot actually lies on the line
	var h model.Point
	switch {
	case math.Abs(a*h1.X+b*h1.Y+c) < footTolerance:
		h = h1
	case math.Abs(a*h2.X+b*h2.Y+c) < footTolerance:
		h = h2
	default:
		return model.Point{}, ErrGeometryMismatch
	}

	// tangent circle: the foot is the single intersection
	if d == lookahead {
		return h, nil
	}

	// two intersections at half-chord distance s from the foot
	s := math.Sqrt(lookahead*lookahead - d*d)
	t1 := model.Point{X: h.X + s*unit.X, Y: h.Y + s*unit.Y, Z: pose.Position.Z}
	t2 := model.Point{X: h.X - s*unit.X, Y: h.Y - s*unit.Y, Z: pose.Position.Z}

	if geo.PlaneDistance(t1, end) < length {
		return t1, nil
	}
	if geo.PlaneDistance(t2, end) < length {
		return t2, nil
	}
	return model.Point{}, ErrNoIntersection
}
