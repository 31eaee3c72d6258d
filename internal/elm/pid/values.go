package pid

import "fmt"

// Temperature in degrees Celsius.
type Temperature struct {
	Celsius float64
}

func (t Temperature) String() string {
	return fmt.Sprintf("%.0f °C", t.Celsius)
}

// Percent is a percentage value (load, trim, throttle).
type Percent struct {
	Percent float64
}

func (p Percent) String() string {
	return fmt.Sprintf("%.1f %%", p.Percent)
}

// RPM is an engine speed.
type RPM struct {
	RPM float64
}

func (r RPM) String() string {
	return fmt.Sprintf("%.0f rpm", r.RPM)
}

// Speed is a vehicle speed.
type Speed struct {
	KPH int
}

func (s Speed) String() string {
	return fmt.Sprintf("%d km/h", s.KPH)
}

// Pressure in kilopascals.
type Pressure struct {
	KPa float64
}

func (p Pressure) String() string {
	return fmt.Sprintf("%.0f kPa", p.KPa)
}

// Voltage in volts.
type Voltage struct {
	Volts float64
}

func (v Voltage) String() string {
	return fmt.Sprintf("%.3f V", v.Volts)
}

// FlowRate in grams per second.
type FlowRate struct {
	GramsPerSecond float64
}

func (f FlowRate) String() string {
	return fmt.Sprintf("%.2f g/s", f.GramsPerSecond)
}

// Duration in whole seconds.
type Duration struct {
	Seconds int
}

func (d Duration) String() string {
	return fmt.Sprintf("%d s", d.Seconds)
}

// Angle in degrees (timing advance, before TDC).
type Angle struct {
	Degrees float64
}

func (a Angle) String() string {
	return fmt.Sprintf("%.1f°", a.Degrees)
}
