// Package parser implements the JSONParser which encodes and decodes
// steering commands in JSON format.
package parser

import (
	"encoding/json"

	"PurePursuit/internal/model"
)

// JSONParser implements Parser using JSON serialization.
type JSONParser struct{}

// NewJSONParser creates a new JSON parser.
func NewJSONParser() *JSONParser { return &JSONParser{} }

// EncodeCommand encodes a SteeringCommand into a JSON string.
func (p *JSONParser) EncodeCommand(cmd model.SteeringCommand) (string, error) {
	b, err := json.Marshal(cmd)
	return string(b), err
}

// DecodeCommand decodes a JSON string into a SteeringCommand.
func (p *JSONParser) DecodeCommand(line string) (model.SteeringCommand, error) {
	var cmd model.SteeringCommand
	err := json.Unmarshal([]byte(line), &cmd)
	return cmd, err
}
