// Package parser converts steering commands and waypoint paths between
// structured types and their wire/file formats.
//
// CSV command wire format (follower -> drive controller):
//
//	VEHICLE_ID,VALID,KAPPA,LINEAR,ANGULAR,INDEX
//
// Waypoint file formats: CSV lines "x,y,z[,velocity]" or a JSON array of
// waypoint objects.
package parser

import "PurePursuit/internal/model"

// Parser encodes and decodes steering commands for one wire format.
type Parser interface {
	// EncodeCommand converts a SteeringCommand into a single wire line.
	EncodeCommand(cmd model.SteeringCommand) (string, error)

	// DecodeCommand parses a wire line back into a SteeringCommand.
	DecodeCommand(line string) (model.SteeringCommand, error)
}

// New returns the parser for a wire format name (csv or json), or false
// when the format is unknown.
func New(format string) (Parser, bool) {
	switch format {
	case "csv":
		return NewCSVParser(), true
	case "json":
		return NewJSONParser(), true
	default:
		return nil, false
	}
}
