package pursuit

import (
	"fmt"

	"PurePursuit/internal/geo"
	"PurePursuit/internal/model"
)

// TargetKind tags how a tick's target point was produced.
type TargetKind int

const (
	// TargetRaw means a waypoint position was used directly.
	TargetRaw TargetKind = iota
	// TargetInterpolated means the target lies on the lookahead circle
	// between two waypoints.
	TargetInterpolated
)

// Result carries the outcome of one successful tracking tick.
type Result struct {
	Kappa         float64
	WaypointIndex int
	Target        model.Point
	Kind          TargetKind
}

// ComputeCurvature runs one tracking tick: waypoint search, validity
// gating, target resolution and curvature calculation. On failure the
// returned error is one of the package sentinels (possibly wrapped in
// ErrTargetLost) and the Result carries the waypoint index reached, or
// -1 when none was selected.
func ComputeCurvature(path model.Path, pose model.Pose, cfg model.LookaheadConfig) (Result, error) {
	idx := SelectNextWaypoint(path, pose, cfg.Distance)
	if idx == -1 {
		return Result{WaypointIndex: -1}, ErrPathLost
	}

	// refuse to steer when the whole path sits inside the minimum
	// lookahead radius: curvature against such near targets is unstable
	validCurve := false
	for i := range path {
		if geo.PlaneDistance(path[i].Position, pose.Position) > cfg.MinimumDistance {
			validCurve = true
			break
		}
	}
	if !validCurve {
		return Result{WaypointIndex: idx}, ErrNoValidCurve
	}

	target, kind, err := resolveTarget(path, idx, pose, cfg)
	if err != nil {
		return Result{WaypointIndex: idx}, fmt.Errorf("%w: %w", ErrTargetLost, err)
	}

	return Result{
		Kappa:         Curvature(target, pose),
		WaypointIndex: idx,
		Target:        target,
		Kind:          kind,
	}, nil
}

// resolveTarget picks between the raw waypoint and an interpolated point.
// The first and last waypoints have no preceding in-path segment, so they
// are always used raw, as is every waypoint when interpolation is off.
func resolveTarget(path model.Path, idx int, pose model.Pose, cfg model.LookaheadConfig) (model.Point, TargetKind, error) {
	if !cfg.LinearInterpolation || idx == 0 || idx == len(path)-1 {
		return path[idx].Position, TargetRaw, nil
	}
	target, err := InterpolateTarget(path, idx, pose, cfg.Distance)
	if err != nil {
		return model.Point{}, TargetRaw, err
	}
	return target, TargetInterpolated, nil
}
