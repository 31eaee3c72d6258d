package pid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoderFormulas(t *testing.T) {
	tests := []struct {
		name    string
		dec     Decoder
		payload []byte
		want    Value
	}{
		{"engine load", EngineLoad{}, []byte{0xFF}, Percent{Percent: 100}},
		{"coolant temp", CoolantTemp{}, []byte{0x69}, Temperature{Celsius: 65}},
		{"short fuel trim centered", ShortFuelTrim{}, []byte{0x80}, Percent{Percent: 0}},
		{"long fuel trim lean", LongFuelTrim{}, []byte{0x00}, Percent{Percent: -100}},
		{"fuel pressure", FuelPressure{}, []byte{0x64}, Pressure{KPa: 300}},
		{"intake pressure", IntakePressure{}, []byte{0x23}, Pressure{KPa: 35}},
		{"engine rpm", EngineRPM{}, []byte{0x1A, 0xF8}, RPM{RPM: 1726}},
		{"vehicle speed", VehicleSpeed{}, []byte{0x32}, Speed{KPH: 50}},
		{"timing advance", TimingAdvance{}, []byte{0x80}, Angle{Degrees: 0}},
		{"intake air temp", IntakeAirTemp{}, []byte{0x28}, Temperature{Celsius: 0}},
		{"maf rate", MAFRate{}, []byte{0x01, 0xF4}, FlowRate{GramsPerSecond: 5}},
		{"throttle position", ThrottlePosition{}, []byte{0x00}, Percent{Percent: 0}},
		{"run time", RunTime{}, []byte{0x01, 0x2C}, Duration{Seconds: 300}},
		{"catalyst temp", CatalystTemp{}, []byte{0x1A, 0x90}, Temperature{Celsius: 640}},
		{"engine oil temp", EngineOilTemp{}, []byte{0x8C}, Temperature{Celsius: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.dec.Decode(tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestControlModuleVoltage(t *testing.T) {
	v, err := ControlModuleVoltage{}.Decode([]byte{0x33, 0x20})
	require.NoError(t, err)
	assert.InDelta(t, 13.088, v.(Voltage).Volts, 0.0001)
}

func TestDecodersUseLeadingBytes(t *testing.T) {
	// Adapters may pad replies beyond the formula's byte length.
	v, err := VehicleSpeed{}.Decode([]byte{0x32, 0xAA, 0xAA})
	require.NoError(t, err)
	assert.Equal(t, Speed{KPH: 50}, v)
}

func TestDecodersRejectShortPayload(t *testing.T) {
	tests := []struct {
		name    string
		dec     Decoder
		payload []byte
	}{
		{"speed empty", VehicleSpeed{}, nil},
		{"rpm one byte", EngineRPM{}, []byte{0x1A}},
		{"maf one byte", MAFRate{}, []byte{0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.dec.Decode(tt.payload)
			require.Error(t, err)

			var mpe *MalformedPayloadError
			assert.ErrorAs(t, err, &mpe)
			assert.Equal(t, tt.dec.PID(), mpe.PID)
		})
	}
}

func TestValueStrings(t *testing.T) {
	assert.Equal(t, "50 km/h", Speed{KPH: 50}.String())
	assert.Equal(t, "1726 rpm", RPM{RPM: 1726}.String())
	assert.Equal(t, "65 °C", Temperature{Celsius: 65}.String())
	assert.Equal(t, "12.5 %", Percent{Percent: 12.5}.String())
}
