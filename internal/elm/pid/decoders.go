package pid

// Mode 01 decoders with the standard SAE J1979 formulas. The scaling
// comments use A, B for the first and second payload byte.

// EngineLoad is calculated engine load (PID 04): A*100/255 %.
type EngineLoad struct{}

func (EngineLoad) PID() byte       { return 0x04 }
func (EngineLoad) ByteLength() int { return 1 }

func (d EngineLoad) Decode(data []byte) (Value, error) {
	if err := need(d.PID(), data, 1); err != nil {
		return nil, err
	}
	return Percent{Percent: float64(data[0]) * 100 / 255}, nil
}

// CoolantTemp is engine coolant temperature (PID 05): A-40 °C.
type CoolantTemp struct{}

func (CoolantTemp) PID() byte       { return 0x05 }
func (CoolantTemp) ByteLength() int { return 1 }

func (d CoolantTemp) Decode(data []byte) (Value, error) {
	if err := need(d.PID(), data, 1); err != nil {
		return nil, err
	}
	return Temperature{Celsius: float64(data[0]) - 40}, nil
}

// ShortFuelTrim is short term fuel trim, bank 1 (PID 06): A*100/128-100 %.
type ShortFuelTrim struct{}

func (ShortFuelTrim) PID() byte       { return 0x06 }
func (ShortFuelTrim) ByteLength() int { return 1 }

func (d ShortFuelTrim) Decode(data []byte) (Value, error) {
	if err := need(d.PID(), data, 1); err != nil {
		return nil, err
	}
	return Percent{Percent: float64(data[0])*100/128 - 100}, nil
}

// LongFuelTrim is long term fuel trim, bank 1 (PID 07): A*100/128-100 %.
type LongFuelTrim struct{}

func (LongFuelTrim) PID() byte       { return 0x07 }
func (LongFuelTrim) ByteLength() int { return 1 }

func (d LongFuelTrim) Decode(data []byte) (Value, error) {
	if err := need(d.PID(), data, 1); err != nil {
		return nil, err
	}
	return Percent{Percent: float64(data[0])*100/128 - 100}, nil
}

// FuelPressure is fuel gauge pressure (PID 0A): 3A kPa.
type FuelPressure struct{}

func (FuelPressure) PID() byte       { return 0x0A }
func (FuelPressure) ByteLength() int { return 1 }

func (d FuelPressure) Decode(data []byte) (Value, error) {
	if err := need(d.PID(), data, 1); err != nil {
		return nil, err
	}
	return Pressure{KPa: float64(data[0]) * 3}, nil
}

// IntakePressure is intake manifold absolute pressure (PID 0B): A kPa.
type IntakePressure struct{}

func (IntakePressure) PID() byte       { return 0x0B }
func (IntakePressure) ByteLength() int { return 1 }

func (d IntakePressure) Decode(data []byte) (Value, error) {
	if err := need(d.PID(), data, 1); err != nil {
		return nil, err
	}
	return Pressure{KPa: float64(data[0])}, nil
}

// EngineRPM is engine speed (PID 0C): ((A*256)+B)/4 rpm.
type EngineRPM struct{}

func (EngineRPM) PID() byte       { return 0x0C }
func (EngineRPM) ByteLength() int { return 2 }

func (d EngineRPM) Decode(data []byte) (Value, error) {
	if err := need(d.PID(), data, 2); err != nil {
		return nil, err
	}
	return RPM{RPM: (float64(data[0])*256 + float64(data[1])) / 4}, nil
}

// VehicleSpeed is vehicle speed (PID 0D): A km/h.
type VehicleSpeed struct{}

func (VehicleSpeed) PID() byte       { return 0x0D }
func (VehicleSpeed) ByteLength() int { return 1 }

func (d VehicleSpeed) Decode(data []byte) (Value, error) {
	if err := need(d.PID(), data, 1); err != nil {
		return nil, err
	}
	return Speed{KPH: int(data[0])}, nil
}

// TimingAdvance is timing advance before TDC (PID 0E): A/2-64 degrees.
type TimingAdvance struct{}

func (TimingAdvance) PID() byte       { return 0x0E }
func (TimingAdvance) ByteLength() int { return 1 }

func (d TimingAdvance) Decode(data []byte) (Value, error) {
	if err := need(d.PID(), data, 1); err != nil {
		return nil, err
	}
	return Angle{Degrees: float64(data[0])/2 - 64}, nil
}

// IntakeAirTemp is intake air temperature (PID 0F): A-40 °C.
type IntakeAirTemp struct{}

func (IntakeAirTemp) PID() byte       { return 0x0F }
func (IntakeAirTemp) ByteLength() int { return 1 }

func (d IntakeAirTemp) Decode(data []byte) (Value, error) {
	if err := need(d.PID(), data, 1); err != nil {
		return nil, err
	}
	return Temperature{Celsius: float64(data[0]) - 40}, nil
}

// MAFRate is mass air flow rate (PID 10): ((A*256)+B)/100 g/s.
type MAFRate struct{}

func (MAFRate) PID() byte       { return 0x10 }
func (MAFRate) ByteLength() int { return 2 }

func (d MAFRate) Decode(data []byte) (Value, error) {
	if err := need(d.PID(), data, 2); err != nil {
		return nil, err
	}
	return FlowRate{GramsPerSecond: (float64(data[0])*256 + float64(data[1])) / 100}, nil
}

// ThrottlePosition is absolute throttle position (PID 11): A*100/255 %.
type ThrottlePosition struct{}

func (ThrottlePosition) PID() byte       { return 0x11 }
func (ThrottlePosition) ByteLength() int { return 1 }

func (d ThrottlePosition) Decode(data []byte) (Value, error) {
	if err := need(d.PID(), data, 1); err != nil {
		return nil, err
	}
	return Percent{Percent: float64(data[0]) * 100 / 255}, nil
}

// RunTime is run time since engine start (PID 1F): (A*256)+B seconds.
type RunTime struct{}

func (RunTime) PID() byte       { return 0x1F }
func (RunTime) ByteLength() int { return 2 }

func (d RunTime) Decode(data []byte) (Value, error) {
	if err := need(d.PID(), data, 2); err != nil {
		return nil, err
	}
	return Duration{Seconds: int(data[0])*256 + int(data[1])}, nil
}

// CatalystTemp is catalyst temperature, bank 1 sensor 1 (PID 3C):
// ((A*256)+B)/10-40 °C.
type CatalystTemp struct{}

func (CatalystTemp) PID() byte       { return 0x3C }
func (CatalystTemp) ByteLength() int { return 2 }

func (d CatalystTemp) Decode(data []byte) (Value, error) {
	if err := need(d.PID(), data, 2); err != nil {
		return nil, err
	}
	return Temperature{Celsius: (float64(data[0])*256+float64(data[1]))/10 - 40}, nil
}

// ControlModuleVoltage is the ECU supply voltage (PID 42):
// ((A*256)+B)/1000 V.
type ControlModuleVoltage struct{}

func (ControlModuleVoltage) PID() byte       { return 0x42 }
func (ControlModuleVoltage) ByteLength() int { return 2 }

func (d ControlModuleVoltage) Decode(data []byte) (Value, error) {
	if err := need(d.PID(), data, 2); err != nil {
		return nil, err
	}
	return Voltage{Volts: (float64(data[0])*256 + float64(data[1])) / 1000}, nil
}

// EngineOilTemp is engine oil temperature (PID 5C): A-40 °C.
type EngineOilTemp struct{}

func (EngineOilTemp) PID() byte       { return 0x5C }
func (EngineOilTemp) ByteLength() int { return 1 }

func (d EngineOilTemp) Decode(data []byte) (Value, error) {
	if err := need(d.PID(), data, 1); err != nil {
		return nil, err
	}
	return Temperature{Celsius: float64(data[0]) - 40}, nil
}
