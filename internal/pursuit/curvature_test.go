package pursuit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"PurePursuit/internal/model"
)

func TestCurvature_StraightAhead(t *testing.T) {
	got := Curvature(model.Point{X: 10}, model.Pose{})
	assert.InDelta(t, 0, got, 1e-12)
}

func TestCurvature_SignFollowsLateralOffset(t *testing.T) {
	left := Curvature(model.Point{X: 5, Y: 5}, model.Pose{})
	right := Curvature(model.Point{X: 5, Y: -5}, model.Pose{})

	assert.InDelta(t, 0.4, left, 1e-12)
	assert.InDelta(t, -0.4, right, 1e-12)
}

func TestCurvature_SaturatesAbeam(t *testing.T) {
	// target directly beside the vehicle: no finite parabola fits
	assert.Equal(t, KappaMin, Curvature(model.Point{Y: 5}, model.Pose{}))
	assert.Equal(t, -KappaMin, Curvature(model.Point{Y: -5}, model.Pose{}))
}

func TestCurvature_RotatedPose(t *testing.T) {
	// vehicle at (2,3) facing +Y; a target 10 m along its heading is
	// straight ahead in the vehicle frame
	pose := model.Pose{Position: model.Point{X: 2, Y: 3}, Yaw: math.Pi / 2}
	got := Curvature(model.Point{X: 2, Y: 13}, pose)
	assert.InDelta(t, 0, got, 1e-9)
}
