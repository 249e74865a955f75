package pursuit

import (
	"PurePursuit/internal/geo"
	"PurePursuit/internal/model"
)

// KappaMin is the saturated curvature magnitude commanded when the target
// sits exactly abeam of the vehicle. The parabola fit has no finite
// answer at zero forward offset, so the tightest representable turn is
// reported instead of an infinity.
const KappaMin = 9.0e10

// Curvature converts a map-frame target point into the signed curvature
// steering the vehicle toward it. The target is moved into the vehicle
// frame and fitted with the parabola y = a*x^2 through the origin; the
// curvature at the vertex is 2y/x^2. Positive values steer left.
func Curvature(target model.Point, pose model.Pose) float64 {
	pt := geo.ToLocalFrame(target, pose)
	denominator := pt.X * pt.X
	numerator := 2.0 * pt.Y
	if denominator != 0 {
		return numerator / denominator
	}
	if numerator > 0 {
		return KappaMin
	}
	return -KappaMin
}
