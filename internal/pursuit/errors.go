package pursuit

import "errors"

// Failure modes of a single tracking tick. All of them are recoverable:
// a failed tick yields no curvature and the next control cycle simply
// retries with fresh inputs. Segment degeneracy (coincident waypoints)
// surfaces as geo.ErrDegenerateLine wrapped in ErrTargetLost.
var (
	// ErrPathLost means the path is empty or the search could not select
	// any waypoint.
	ErrPathLost = errors.New("no waypoint to track")

	// ErrNoValidCurve means every waypoint sits within the minimum
	// lookahead distance, so any curvature would be unstable.
	ErrNoValidCurve = errors.New("no waypoint beyond minimum lookahead")

	// ErrOutOfRange means the lookahead circle does not reach the line
	// through the target segment.
	ErrOutOfRange = errors.New("lookahead circle does not reach segment line")

	// ErrGeometryMismatch means neither candidate foot of the
	// perpendicular satisfied the line equation within tolerance. This
	// guards against numerical inconsistency and should not occur.
	ErrGeometryMismatch = errors.New("no perpendicular foot satisfies the line equation")

	// ErrNoIntersection means neither circle intersection falls inside
	// the target segment.
	ErrNoIntersection = errors.New("no circle intersection within segment")

	// ErrTargetLost wraps any interpolation failure surfaced by the
	// orchestrator.
	ErrTargetLost = errors.New("target interpolation failed")
)
