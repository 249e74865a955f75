package device

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PurePursuit/internal/model"
	"PurePursuit/internal/parser"
)

func TestBuildNMEA_ParsesBack(t *testing.T) {
	lines := buildNMEA(21.0285, 105.8048, 12.5, 1.5, 84.4)
	require.Len(t, lines, 2)

	gga, err := parser.ParseNMEA(lines[0])
	require.NoError(t, err)
	assert.InDelta(t, 21.0285, gga.Lat, 1e-6)
	assert.InDelta(t, 105.8048, gga.Lon, 1e-6)
	assert.InDelta(t, 12.5, gga.Altitude, 1e-9)

	rmc, err := parser.ParseNMEA(lines[1])
	require.NoError(t, err)
	require.True(t, rmc.HasCourse)
	assert.InDelta(t, 84.4, rmc.CourseDeg, 1e-9)
	assert.InDelta(t, 1.5, rmc.SpeedMps, 1e-2)
}

func TestBuildNMEA_SouthernWesternHemisphere(t *testing.T) {
	lines := buildNMEA(-33.8688, -70.6693, 0, 0, 0)

	fix, err := parser.ParseNMEA(lines[0])
	require.NoError(t, err)
	assert.InDelta(t, -33.8688, fix.Lat, 1e-6)
	assert.InDelta(t, -70.6693, fix.Lon, 1e-6)
}

func TestHeadingTo(t *testing.T) {
	assert.InDelta(t, 0, headingTo(model.Point{}, model.Point{X: 5}), 1e-12)
	assert.InDelta(t, math.Pi/2, headingTo(model.Point{}, model.Point{Y: 5}), 1e-12)
	assert.InDelta(t, -3*math.Pi/4, headingTo(model.Point{X: 1, Y: 1}, model.Point{}), 1e-12)
}
