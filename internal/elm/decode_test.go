package elm

import (
	"testing"
	"time"

	"elmlink/internal/elm/pid"
	"elmlink/internal/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T, protos ...pid.Decoder) *registry {
	t.Helper()
	r := newRegistry()
	for _, p := range protos {
		_, err := r.resolve(p)
		require.NoError(t, err)
	}
	return r
}

func TestDecodeLineSpeed(t *testing.T) {
	r := testRegistry(t, pid.VehicleSpeed{})
	at := time.Now()

	reading, ok := decodeLine(r, ModeCurrentData, transport.Line{Text: "410D32", At: at})
	require.True(t, ok)
	assert.Equal(t, byte(0x0D), reading.PID)
	assert.Equal(t, pid.Speed{KPH: 50}, reading.Value)
	assert.Equal(t, at, reading.At)
}

func TestDecodeLineToleratesSpacing(t *testing.T) {
	// Spacing is disabled during init, but adapters echo spaced frames
	// before ATS0 takes effect.
	r := testRegistry(t, pid.VehicleSpeed{})

	reading, ok := decodeLine(r, ModeCurrentData, transport.Line{Text: "41 0D 32"})
	require.True(t, ok)
	assert.Equal(t, pid.Speed{KPH: 50}, reading.Value)
}

func TestDecodeLineNoResult(t *testing.T) {
	r := testRegistry(t, pid.VehicleSpeed{}, pid.EngineRPM{})

	tests := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"short", "41"},
		{"exactly four chars", "410D"},
		{"error string", "NO DATA"},
		{"prompt echo", "SEARCHING..."},
		{"mode mismatch", "420D32"},
		{"unknown pid", "41FF32"},
		{"odd payload", "410D3"},
		{"non-hex payload", "410DZZ"},
		{"payload too short for formula", "410C1A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reading, ok := decodeLine(r, ModeCurrentData, transport.Line{Text: tt.line})
			assert.False(t, ok)
			assert.Nil(t, reading)
		})
	}
}

func TestDecodeLineRPM(t *testing.T) {
	r := testRegistry(t, pid.EngineRPM{})

	reading, ok := decodeLine(r, ModeCurrentData, transport.Line{Text: "410C1AF8"})
	require.True(t, ok)
	assert.Equal(t, pid.RPM{RPM: 1726}, reading.Value)
}
