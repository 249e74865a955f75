// Package parser also loads waypoint path files. CSV files hold one
// waypoint per line as "x,y,z" with an optional fourth velocity column;
// blank lines and lines starting with '#' are skipped. JSON files hold an
// array of waypoint objects.
package parser

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"PurePursuit/internal/model"
)

// LoadPath reads a waypoint file, choosing the format by extension
// (.csv or .json).
func LoadPath(path string) (model.Path, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("warning: close path file: %v", cerr)
		}
	}()

	switch ext := filepath.Ext(path); ext {
	case ".csv":
		return ParsePathCSV(f)
	case ".json":
		return ParsePathJSON(f)
	default:
		return nil, fmt.Errorf("unknown path file extension %q", ext)
	}
}

// ParsePathCSV parses waypoints from CSV lines "x,y,z[,velocity]".
func ParsePathCSV(r io.Reader) (model.Path, error) {
	var path model.Path
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		wp, err := parseWaypointCSV(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		path = append(path, wp)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return path, nil
}

// parseWaypointCSV parses a single "x,y,z[,velocity]" line.
func parseWaypointCSV(line string) (model.Waypoint, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 3 && len(fields) != 4 {
		return model.Waypoint{}, fmt.Errorf("expected 3 or 4 fields, got %d", len(fields))
	}
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return model.Waypoint{}, fmt.Errorf("invalid field %d: %q", i+1, f)
		}
		vals[i] = v
	}
	wp := model.Waypoint{Position: model.Point{X: vals[0], Y: vals[1], Z: vals[2]}}
	if len(vals) == 4 {
		wp.Velocity = vals[3]
	}
	return wp, nil
}

// ParsePathJSON parses waypoints from a JSON array.
func ParsePathJSON(r io.Reader) (model.Path, error) {
	var path model.Path
	if err := json.NewDecoder(r).Decode(&path); err != nil {
		return nil, fmt.Errorf("decode waypoint json: %w", err)
	}
	return path, nil
}
