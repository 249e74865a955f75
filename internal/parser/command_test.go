package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PurePursuit/internal/model"
	"PurePursuit/internal/pursuit"
)

func TestNew_KnownFormats(t *testing.T) {
	p, ok := New("csv")
	require.True(t, ok)
	assert.IsType(t, &CSVParser{}, p)

	p, ok = New("json")
	require.True(t, ok)
	assert.IsType(t, &JSONParser{}, p)

	_, ok = New("protobuf")
	assert.False(t, ok)
}

func TestCSVParser_EncodeCommand(t *testing.T) {
	cmd := model.SteeringCommand{
		VehicleID:   "VEH_01",
		Valid:       true,
		Kappa:       0.125,
		Linear:      1.5,
		Angular:     0.1875,
		TargetIndex: 2,
	}

	line, err := NewCSVParser().EncodeCommand(cmd)
	require.NoError(t, err)
	assert.Equal(t, "VEH_01,1,0.125,1.50,0.1875,2", line)
}

func TestCSVParser_RoundTrip(t *testing.T) {
	p := NewCSVParser()
	commands := []model.SteeringCommand{
		{VehicleID: "VEH_01", Valid: true, Kappa: 0.125, Linear: 1.5, Angular: 0.1875, TargetIndex: 2},
		{VehicleID: "VEH_01", Valid: false, TargetIndex: -1},
		{VehicleID: "VEH_02", Valid: true, Kappa: pursuit.KappaMin, Linear: 0.5, Angular: 100, TargetIndex: 7},
	}
	for _, cmd := range commands {
		line, err := p.EncodeCommand(cmd)
		require.NoError(t, err)
		got, err := p.DecodeCommand(line)
		require.NoError(t, err)
		if diff := cmp.Diff(cmd, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestCSVParser_DecodeCommand_Invalid(t *testing.T) {
	p := NewCSVParser()
	for _, line := range []string{
		"",
		"VEH_01,1,0.125,1.50,0.1875",
		"VEH_01,yes,0.125,1.50,0.1875,2",
		"VEH_01,1,nan-ish,1.50,0.1875,2",
		"VEH_01,1,0.125,1.50,0.1875,two",
	} {
		_, err := p.DecodeCommand(line)
		assert.Error(t, err, "line %q", line)
	}
}

func TestJSONParser_RoundTrip(t *testing.T) {
	p := NewJSONParser()
	cmd := model.SteeringCommand{
		VehicleID:   "VEH_01",
		Valid:       true,
		Kappa:       -0.4,
		Linear:      2,
		Angular:     -0.8,
		TargetIndex: 5,
		Timestamp:   "2026-08-30T12:00:00Z",
	}

	line, err := p.EncodeCommand(cmd)
	require.NoError(t, err)
	got, err := p.DecodeCommand(line)
	require.NoError(t, err)
	assert.Equal(t, cmd, got)
}

func TestJSONParser_DecodeCommand_Invalid(t *testing.T) {
	_, err := NewJSONParser().DecodeCommand("{not json")
	assert.Error(t, err)
}
