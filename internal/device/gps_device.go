// Package device implements a GPS pose source using the NMEA protocol.
// It supports both real serial reading and simulated output generation
// for testing without hardware.
package device

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"PurePursuit/internal/geo"
	"PurePursuit/internal/model"
	"PurePursuit/internal/parser"
)

// GpsDevice reads NMEA data from a serial GPS receiver, or writes
// simulated NMEA output when used as the far end of a virtual pair.
type GpsDevice struct {
	Device string
	Baud   int
	Serial *SerialDevice
}

// NewGpsDevice creates a new GPS device based on serial communication.
func NewGpsDevice(dev string, baud int) *GpsDevice {
	return &GpsDevice{Device: dev, Baud: baud}
}

// Open opens the GPS serial port.
func (g *GpsDevice) Open() error {
	if g.Serial != nil {
		return nil
	}
	sd, err := NewSerialDevice(g.Device, g.Baud)
	if err != nil {
		return fmt.Errorf("open gps serial failed: %w", err)
	}
	g.Serial = sd
	return nil
}

// Close closes the GPS serial port safely.
func (g *GpsDevice) Close() error {
	if g.Serial == nil {
		return nil
	}
	err := g.Serial.Close()
	g.Serial = nil
	return err
}

// ReadLine reads one NMEA line from the GPS.
func (g *GpsDevice) ReadLine(timeout time.Duration) (string, error) {
	if g.Serial == nil {
		return "", errors.New("gps serial not open")
	}
	return g.Serial.ReadLine(timeout)
}

// WriteLine writes a string to the GPS port (used by the simulator).
func (g *GpsDevice) WriteLine(s string) error {
	if g.Serial == nil {
		return errors.New("gps serial not open")
	}
	return g.Serial.WriteLine(s)
}

// Read continuously streams parsed GPS fixes to a channel.
// Returns a stop function to safely terminate the loop.
func (g *GpsDevice) Read(out chan<- model.GpsFix) (func(), error) {
	if err := g.Open(); err != nil {
		return nil, err
	}

	stop := make(chan struct{})
	go func() {
		defer func() {
			_ = g.Close()
			close(out)
		}()

		for {
			select {
			case <-stop:
				return
			default:
			}

			line, err := g.ReadLine(0)
			if err != nil {
				time.Sleep(200 * time.Millisecond)
				continue
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			fix, err := parser.ParseNMEA(line)
			if err != nil {
				if !errors.Is(err, parser.ErrNMEASkip) {
					log.Printf("gps: drop line %q: %v", line, err)
				}
				continue
			}
			out <- fix
		}
	}()
	return func() { close(stop) }, nil
}

// Simulate writes synthetic NMEA sentences walking the given path at the
// given speed until stop is closed. Positions are converted back to
// geodetic coordinates through the projector so the reading side sees a
// consistent map frame. The walk holds at the final waypoint.
func (g *GpsDevice) Simulate(stop <-chan struct{}, path model.Path, proj geo.Projector, speed float64, interval time.Duration) error {
	if len(path) == 0 {
		return errors.New("simulate: empty path")
	}
	if err := g.Open(); err != nil {
		return err
	}
	defer func() {
		if err := g.Close(); err != nil {
			log.Printf("warning: failed to close gps device: %v", err)
		}
	}()

	log.Printf("gps simulator started on %s (baud %d, %.1f m/s)", g.Device, g.Baud, speed)

	pos := path[0].Position
	seg := 0
	course := 0.0
	step := speed * interval.Seconds()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			log.Println("gps simulation stopped")
			return nil
		case <-ticker.C:
		}

		// advance along the path, possibly across segment boundaries
		remain := step
		for seg < len(path)-1 && remain > 0 {
			tgt := path[seg+1].Position
			dist := geo.PlaneDistance(pos, tgt)
			if dist <= remain {
				pos = tgt
				remain -= dist
				seg++
				continue
			}
			pos = model.Point{
				X: pos.X + (tgt.X-pos.X)/dist*remain,
				Y: pos.Y + (tgt.Y-pos.Y)/dist*remain,
				Z: tgt.Z,
			}
			course = geo.CourseFromYaw(headingTo(pos, tgt))
			remain = 0
		}

		lat, lon := proj.ToGeodetic(pos)
		for _, line := range buildNMEA(lat, lon, pos.Z, speed, course) {
			if err := g.WriteLine(line); err != nil {
				log.Printf("gps simulate write error: %v", err)
			}
		}
	}
}

// headingTo returns the map-frame yaw from p toward q.
func headingTo(p, q model.Point) float64 {
	return math.Atan2(q.Y-p.Y, q.X-p.X)
}

// buildNMEA renders a GGA/RMC sentence pair for one simulated fix.
func buildNMEA(lat, lon, alt, speedMps, courseDeg float64) []string {
	latStr, latDir := parser.ToNMEACoord(lat, true)
	lonStr, lonDir := parser.ToNMEACoord(lon, false)
	now := time.Now().UTC()
	timeUTC := now.Format("150405.00")
	dateUTC := now.Format("020106")

	gga := fmt.Sprintf("$GPGGA,%s,%s,%s,%s,%s,1,08,0.9,%.1f,M,0.0,M,,*47",
		timeUTC, latStr, latDir, lonStr, lonDir, alt)
	rmc := fmt.Sprintf("$GPRMC,%s,A,%s,%s,%s,%s,%.2f,%.2f,%s,,,A*00",
		timeUTC, latStr, latDir, lonStr, lonDir, speedMps*mpsToKnots, courseDeg, dateUTC)
	return []string{gga, rmc}
}

// mpsToKnots converts m/s back into the knots field RMC carries.
const mpsToKnots = 1.0 / 0.514444
