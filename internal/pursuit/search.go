// Package pursuit implements pure pursuit path tracking: waypoint search,
// lookahead target interpolation and curvature calculation. Every
// function is a pure function of the path, pose and parameters passed in;
// the package holds no state and performs no I/O.
package pursuit

import (
	"PurePursuit/internal/geo"
	"PurePursuit/internal/model"
)

// SelectNextWaypoint scans the path in order and returns the index of the
// first waypoint farther than lookahead from the vehicle. The last index
// is returned as a fallback when the whole path sits inside the lookahead
// circle, so any non-empty path yields a target. Returns -1 for an empty
// path.
func SelectNextWaypoint(path model.Path, pose model.Pose, lookahead float64) int {
	for i := range path {
		if i == len(path)-1 {
			return i
		}
		if geo.PlaneDistance(path[i].Position, pose.Position) > lookahead {
			return i
		}
	}
	return -1
}
