// Package main is the entry point of the waypoint follower.
// It initializes the logger, loads the configuration, constructs the
// system (follower, GPS source, monitor) and starts it.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"PurePursuit/internal/core"
	"PurePursuit/internal/util"
)

// main loads configuration, constructs the system and starts all
// components. The program waits for an interrupt signal and performs
// graceful shutdown.
func main() {
	util.SetupLogger()

	cfgPath := flag.String("c", "configs/config.yml", "path to configuration file")
	flag.Parse()

	log.Printf("[Main] Using config: %s", *cfgPath)

	sys, err := core.NewSystem(*cfgPath)
	if err != nil {
		log.Fatalf("failed to create system: %v", err)
	}

	if err := sys.StartAll(); err != nil {
		log.Fatalf("failed to start system: %v", err)
	}

	// wait for Ctrl+C or SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("[Main] Shutting down system...")
	sys.StopAll()
	log.Println("[Main] System stopped cleanly.")
}
