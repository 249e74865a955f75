// Package parser implements the CSVParser which handles encoding and
// decoding of steering commands using comma-separated values format.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"PurePursuit/internal/model"
)

// CSVParser implements Parser using CSV format.
// Example command CSV: VEH_01,1,0.125,1.50,0.1875,2
type CSVParser struct{}

// NewCSVParser creates a new CSV parser instance.
func NewCSVParser() *CSVParser { return &CSVParser{} }

// EncodeCommand converts a SteeringCommand into a CSV string. The
// timestamp is not carried on the wire; curvature and angular rate are
// formatted with full precision so saturated values survive the round
// trip.
func (p *CSVParser) EncodeCommand(cmd model.SteeringCommand) (string, error) {
	valid := 0
	if cmd.Valid {
		valid = 1
	}
	line := fmt.Sprintf("%s,%d,%s,%.2f,%s,%d",
		cmd.VehicleID,
		valid,
		strconv.FormatFloat(cmd.Kappa, 'g', -1, 64),
		cmd.Linear,
		strconv.FormatFloat(cmd.Angular, 'g', -1, 64),
		cmd.TargetIndex,
	)
	return line, nil
}

// DecodeCommand parses a CSV command line into a SteeringCommand.
func (p *CSVParser) DecodeCommand(line string) (model.SteeringCommand, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) != 6 {
		return model.SteeringCommand{}, fmt.Errorf("expected 6 fields, got %d", len(fields))
	}

	valid, err := strconv.Atoi(fields[1])
	if err != nil {
		return model.SteeringCommand{}, errors.New("invalid valid flag")
	}
	kappa, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return model.SteeringCommand{}, errors.New("invalid kappa")
	}
	linear, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return model.SteeringCommand{}, errors.New("invalid linear")
	}
	angular, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return model.SteeringCommand{}, errors.New("invalid angular")
	}
	index, err := strconv.Atoi(fields[5])
	if err != nil {
		return model.SteeringCommand{}, errors.New("invalid target index")
	}

	return model.SteeringCommand{
		VehicleID:   fields[0],
		Valid:       valid != 0,
		Kappa:       kappa,
		Linear:      linear,
		Angular:     angular,
		TargetIndex: index,
	}, nil
}
