// Tracking simulator: drives a kinematic unicycle model along a waypoint
// file using the pursuit tracker and reports progress per tick. Use this
// for tuning lookahead parameters when you don't have vehicle hardware.
package main

import (
	"flag"
	"log"
	"math"

	"PurePursuit/internal/geo"
	"PurePursuit/internal/model"
	"PurePursuit/internal/parser"
	"PurePursuit/internal/pursuit"
)

func main() {
	pathFile := flag.String("path", "configs/waypoints.csv", "waypoint file (csv or json)")
	lookahead := flag.Float64("lookahead", 4.0, "lookahead distance (m)")
	minimum := flag.Float64("min", 0.5, "minimum lookahead distance (m)")
	interp := flag.Bool("interp", true, "enable linear interpolation")
	speed := flag.Float64("speed", 1.5, "vehicle speed (m/s)")
	rate := flag.Float64("rate", 20.0, "ticks per second")
	maxTicks := flag.Int("ticks", 10000, "tick limit")
	maxOmega := flag.Float64("maxomega", 3.0, "turn rate clamp (rad/s)")
	flag.Parse()

	path, err := parser.LoadPath(*pathFile)
	if err != nil {
		log.Fatalf("load path: %v", err)
	}
	if len(path) < 2 {
		log.Fatalf("path needs at least 2 waypoints, got %d", len(path))
	}

	cfg := model.LookaheadConfig{
		Distance:            *lookahead,
		MinimumDistance:     *minimum,
		LinearInterpolation: *interp,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid parameters: %v", err)
	}

	// start on the first waypoint, facing the second
	first := path[0].Position
	second := path[1].Position
	pose := model.Pose{
		Position: first,
		Yaw:      math.Atan2(second.Y-first.Y, second.X-first.X),
	}
	goal := path[len(path)-1].Position

	dt := 1.0 / *rate
	log.Printf("simulating %d waypoints, lookahead=%.2f speed=%.2f", len(path), *lookahead, *speed)

	for tick := 0; tick < *maxTicks; tick++ {
		res, err := pursuit.ComputeCurvature(path, pose, cfg)
		if err != nil {
			log.Printf("tick %d: tracking ended: %v (%.2fm from goal)",
				tick, err, geo.PlaneDistance(pose.Position, goal))
			return
		}

		omega := *speed * res.Kappa
		if omega > *maxOmega {
			omega = *maxOmega
		} else if omega < -*maxOmega {
			omega = -*maxOmega
		}

		pose.Position.X += *speed * math.Cos(pose.Yaw) * dt
		pose.Position.Y += *speed * math.Sin(pose.Yaw) * dt
		pose.Yaw += omega * dt

		if tick%int(*rate) == 0 {
			log.Printf("tick %d: idx=%d kappa=%+.4f pos=(%.2f, %.2f) goal=%.2fm",
				tick, res.WaypointIndex, res.Kappa,
				pose.Position.X, pose.Position.Y,
				geo.PlaneDistance(pose.Position, goal))
		}

		if geo.PlaneDistance(pose.Position, goal) < *minimum {
			log.Printf("tick %d: reached goal within %.2fm", tick, *minimum)
			return
		}
	}
	log.Printf("tick limit reached %.2fm from goal", geo.PlaneDistance(pose.Position, goal))
}
