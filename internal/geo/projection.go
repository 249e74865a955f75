package geo

import (
	"math"

	"PurePursuit/internal/model"
)

// earthRadius is the WGS84 mean earth radius in metres.
const earthRadius = 6371008.8

// Projector converts geodetic GPS fixes into the local planar map frame
// using an equirectangular projection around a fixed origin. +X points
// east, +Y north. Accurate to well under a metre over the few hundred
// metres a follower path covers.
type Projector struct {
	OriginLat float64
	OriginLon float64
}

// ToLocal projects a geodetic fix into map-frame metres.
func (pr Projector) ToLocal(fix model.GpsFix) model.Point {
	latRad := pr.OriginLat * math.Pi / 180.0
	return model.Point{
		X: earthRadius * math.Cos(latRad) * (fix.Lon - pr.OriginLon) * math.Pi / 180.0,
		Y: earthRadius * (fix.Lat - pr.OriginLat) * math.Pi / 180.0,
		Z: fix.Altitude,
	}
}

// ToGeodetic is the inverse of ToLocal, used by the GPS simulator to
// synthesize NMEA sentences for map-frame positions.
func (pr Projector) ToGeodetic(p model.Point) (lat, lon float64) {
	latRad := pr.OriginLat * math.Pi / 180.0
	lat = pr.OriginLat + p.Y/earthRadius*180.0/math.Pi
	lon = pr.OriginLon + p.X/(earthRadius*math.Cos(latRad))*180.0/math.Pi
	return lat, lon
}

// YawFromCourse converts an NMEA course over ground (degrees clockwise
// from north) into a map-frame yaw (radians counter-clockwise from east).
func YawFromCourse(courseDeg float64) float64 {
	return (90.0 - courseDeg) * math.Pi / 180.0
}

// CourseFromYaw is the inverse of YawFromCourse, normalised to [0, 360).
func CourseFromYaw(yaw float64) float64 {
	course := math.Mod(90.0-yaw*180.0/math.Pi, 360.0)
	if course < 0 {
		course += 360.0
	}
	return course
}
