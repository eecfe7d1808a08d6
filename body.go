package ott

import (
	"fmt"
)

// Body defines a gravitating body at a fixed position of the 2D universe.
// The Orbit radius is the departure or target orbit for planets, and the
// keep-out radius for obstacles; it is zero for bodies with neither.
// A Body is a plain value and is never mutated after construction.
type Body struct {
	Name     string
	Mass     float64   // in internal mass units
	Position []float64 // 2D position in internal length units
	Orbit    float64   // orbit or keep-out radius, 0 if none
	Radius   float64   // physical radius, 0 if unknown
}

// NewBody returns a new Body after validating its physical parameters.
func NewBody(name string, mass float64, position []float64, orbit float64) (Body, error) {
	if name == "" {
		return Body{}, fmt.Errorf("body must be named")
	}
	if mass <= 0 {
		return Body{}, fmt.Errorf("body %s: mass must be positive (got %f)", name, mass)
	}
	if len(position) != 2 {
		return Body{}, fmt.Errorf("body %s: position must be a 2D vector (got %d components)", name, len(position))
	}
	if orbit < 0 {
		return Body{}, fmt.Errorf("body %s: orbit radius may not be negative (got %f)", name, orbit)
	}
	return Body{Name: name, Mass: mass, Position: []float64{position[0], position[1]}, Orbit: orbit}, nil
}

// String implements the Stringer interface.
func (b Body) String() string {
	return b.Name + " body"
}

// Equals returns whether the provided body is the same.
func (b Body) Equals(o Body) bool {
	return b.Name == o.Name && b.Mass == o.Mass && b.Orbit == o.Orbit && b.Radius == o.Radius &&
		b.Position[0] == o.Position[0] && b.Position[1] == o.Position[1]
}

// Vehicle defines the point-mass vehicle performing the transfer.
// All limits are norms, in internal units. Immutable.
type Vehicle struct {
	Name        string
	Mass        float64
	ThrustLimit float64
	SpeedLimit  float64
}

// NewVehicle returns a new Vehicle after validating its parameters.
func NewVehicle(name string, mass, thrustLimit, speedLimit float64) (Vehicle, error) {
	if mass <= 0 {
		return Vehicle{}, fmt.Errorf("vehicle %s: mass must be positive (got %f)", name, mass)
	}
	if thrustLimit <= 0 {
		return Vehicle{}, fmt.Errorf("vehicle %s: thrust limit must be positive (got %f)", name, thrustLimit)
	}
	if speedLimit <= 0 {
		return Vehicle{}, fmt.Errorf("vehicle %s: speed limit must be positive (got %f)", name, speedLimit)
	}
	return Vehicle{Name: name, Mass: mass, ThrustLimit: thrustLimit, SpeedLimit: speedLimit}, nil
}

// String implements the Stringer interface.
func (v Vehicle) String() string {
	return fmt.Sprintf("%s (m=%f umax=%f vmax=%f)", v.Name, v.Mass, v.ThrustLimit, v.SpeedLimit)
}
