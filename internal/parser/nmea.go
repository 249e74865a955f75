// Package parser provides NMEA sentence handling for the GPS pose source.
// It supports GGA (position + altitude) and RMC (position + speed/course)
// sentences and ddmm.mmmm coordinate conversion.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"PurePursuit/internal/model"
)

// ErrNMEASkip marks sentences that are well formed but carry nothing the
// follower uses (unsupported type, or RMC without an active fix).
var ErrNMEASkip = errors.New("nmea sentence not usable")

const knotsToMps = 0.514444

// ParseNMEA parses one NMEA sentence into a GpsFix. Sentences other than
// GGA/RMC, and RMC sentences without an active fix, return ErrNMEASkip.
func ParseNMEA(line string) (model.GpsFix, error) {
	line = strings.TrimSpace(line)
	if i := strings.IndexByte(line, '*'); i >= 0 {
		line = line[:i]
	}
	parts := strings.Split(line, ",")
	if len(parts) < 7 || !strings.HasPrefix(parts[0], "$") {
		return model.GpsFix{}, fmt.Errorf("malformed nmea sentence")
	}

	// talker prefixes vary (GP, GN, ...); dispatch on the sentence type
	switch typ := parts[0][len(parts[0])-3:]; typ {
	case "GGA":
		return parseGGA(parts)
	case "RMC":
		return parseRMC(parts)
	default:
		return model.GpsFix{}, ErrNMEASkip
	}
}

// parseGGA handles $__GGA,time,lat,NS,lon,EW,fix,sats,hdop,alt,M,...
func parseGGA(parts []string) (model.GpsFix, error) {
	if len(parts) < 10 {
		return model.GpsFix{}, fmt.Errorf("gga: expected 10+ fields, got %d", len(parts))
	}
	if parts[6] == "0" || parts[6] == "" {
		return model.GpsFix{}, ErrNMEASkip
	}
	lat, err1 := ParseNMEACoord(parts[2], parts[3])
	lon, err2 := ParseNMEACoord(parts[4], parts[5])
	if err1 != nil || err2 != nil {
		return model.GpsFix{}, fmt.Errorf("gga: invalid coordinates")
	}
	fix := model.GpsFix{Lat: lat, Lon: lon}
	if alt, err := strconv.ParseFloat(parts[9], 64); err == nil {
		fix.Altitude = alt
	}
	return fix, nil
}

// parseRMC handles $__RMC,time,status,lat,NS,lon,EW,speed,course,date,...
func parseRMC(parts []string) (model.GpsFix, error) {
	if len(parts) < 9 {
		return model.GpsFix{}, fmt.Errorf("rmc: expected 9+ fields, got %d", len(parts))
	}
	if parts[2] != "A" {
		return model.GpsFix{}, ErrNMEASkip
	}
	lat, err1 := ParseNMEACoord(parts[3], parts[4])
	lon, err2 := ParseNMEACoord(parts[5], parts[6])
	if err1 != nil || err2 != nil {
		return model.GpsFix{}, fmt.Errorf("rmc: invalid coordinates")
	}
	fix := model.GpsFix{Lat: lat, Lon: lon}
	if speed, err := strconv.ParseFloat(parts[7], 64); err == nil {
		fix.SpeedMps = speed * knotsToMps
	}
	if course, err := strconv.ParseFloat(parts[8], 64); err == nil {
		fix.CourseDeg = course
		fix.HasCourse = true
	}
	return fix, nil
}

// ParseNMEACoord converts NMEA ddmm.mmmm format to decimal degrees.
// For example, 2101.7102,N -> 21.0285033
func ParseNMEACoord(value string, dir string) (float64, error) {
	if len(value) < 4 {
		return 0, fmt.Errorf("invalid nmea coord")
	}
	var degPart, minPart string
	// latitude has 2 digit degrees vs lon 3 digits; detect by dir
	if dir == "N" || dir == "S" {
		degPart = value[:2]
		minPart = value[2:]
	} else {
		degPart = value[:3]
		minPart = value[3:]
	}
	deg, err := strconv.ParseFloat(degPart, 64)
	if err != nil {
		return 0, err
	}
	min, err := strconv.ParseFloat(minPart, 64)
	if err != nil {
		return 0, err
	}
	dec := deg + min/60.0
	if dir == "S" || dir == "W" {
		dec = -dec
	}
	return dec, nil
}

// ToNMEACoord converts decimal degrees to ddmm.mmmm string format.
func ToNMEACoord(dec float64, isLat bool) (string, string) {
	dir := "N"
	if !isLat {
		dir = "E"
	}
	if dec < 0 {
		dec = -dec
		if isLat {
			dir = "S"
		} else {
			dir = "W"
		}
	}
	deg := int(dec)
	min := (dec - float64(deg)) * 60
	if isLat {
		return fmt.Sprintf("%02d%07.4f", deg, min), dir
	}
	return fmt.Sprintf("%03d%07.4f", deg, min), dir
}
