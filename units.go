package ott

import "math"

// GravitationalConstant is the gravitational constant in m^3 kg^-1 s^-2.
const GravitationalConstant = 6.67e-11

// UnitSystem defines the scaling from raw SI inputs to the internal units of
// the optimization. Scaling is applied exactly once, when a catalog or
// scenario is built; nothing downstream converts units again. Keeping the
// internal quantities near unity is what keeps the program well conditioned.
type UnitSystem struct {
	MassScale   float64 // kilograms per internal mass unit
	LengthScale float64 // meters per internal length unit
	TimeScale   float64 // seconds per internal time unit
}

// TransferUnits is the scaling used for the interplanetary transfer scenario:
// metric tons, hundreds of gigameters, and years.
var TransferUnits = UnitSystem{MassScale: 1e3, LengthScale: 1e11, TimeScale: 60 * 60 * 24 * 30 * 12}

// Mass converts kilograms to internal mass units.
func (u UnitSystem) Mass(kg float64) float64 {
	return kg / u.MassScale
}

// Length converts meters to internal length units.
func (u UnitSystem) Length(m float64) float64 {
	return m / u.LengthScale
}

// Time converts seconds to internal time units.
func (u UnitSystem) Time(s float64) float64 {
	return s / u.TimeScale
}

// Speed converts m/s to internal speed units.
func (u UnitSystem) Speed(ms float64) float64 {
	return ms * u.TimeScale / u.LengthScale
}

// Thrust converts Newtons to internal force units.
func (u UnitSystem) Thrust(n float64) float64 {
	return n * u.TimeScale * u.TimeScale / (u.MassScale * u.LengthScale)
}

// Acceleration converts internal acceleration units back to m/s^2.
func (u UnitSystem) Acceleration(a float64) float64 {
	return a * u.LengthScale / (u.TimeScale * u.TimeScale)
}

// Gravitational converts a gravitational constant in m^3 kg^-1 s^-2 to
// internal units.
func (u UnitSystem) Gravitational(si float64) float64 {
	return si * u.MassScale * u.TimeScale * u.TimeScale / math.Pow(u.LengthScale, 3)
}

// Position converts a 2D position in meters to internal length units.
func (u UnitSystem) Position(m []float64) []float64 {
	return []float64{u.Length(m[0]), u.Length(m[1])}
}
