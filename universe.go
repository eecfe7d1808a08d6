package ott

import (
	"fmt"
	"math"
)

// Universe aggregates the gravitating bodies of the problem and computes the
// net gravitational acceleration they exert on the vehicle. The body list is
// fixed at construction and read-only thereafter.
//
// All acceleration queries assume the evaluation point does not coincide with
// a body center: the gravity gradient is singular there and the result is not
// a number. Callers guarantee this precondition; the perturbed initial guess
// exists precisely so that the solver never evaluates at a center.
type Universe struct {
	G      float64 // gravitational constant in internal units
	bodies []Body
}

// NewUniverse returns a new Universe from the given constant and bodies.
func NewUniverse(g float64, bodies ...Body) (*Universe, error) {
	if g <= 0 {
		return nil, fmt.Errorf("gravitational constant must be positive (got %f)", g)
	}
	if len(bodies) == 0 {
		return nil, fmt.Errorf("universe needs at least one body")
	}
	seen := make(map[string]bool, len(bodies))
	for _, b := range bodies {
		if seen[b.Name] {
			return nil, fmt.Errorf("duplicate body %s", b.Name)
		}
		seen[b.Name] = true
	}
	u := &Universe{G: g, bodies: make([]Body, len(bodies))}
	copy(u.bodies, bodies)
	return u, nil
}

// Bodies returns a copy of the registered body list.
func (u *Universe) Bodies() []Body {
	bodies := make([]Body, len(u.bodies))
	copy(bodies, u.bodies)
	return bodies
}

// Body returns the registered body with the given name.
func (u *Universe) Body(name string) (Body, error) {
	for _, b := range u.bodies {
		if b.Name == name {
			return b, nil
		}
	}
	return Body{}, fmt.Errorf("%s is not in the universe", name)
}

// μ returns the gravitational parameter G*m of the given body.
func (u *Universe) μ(b Body) float64 {
	return u.G * b.Mass
}

// PositionWrt returns the 2D position of point p relative to the given body.
func (u *Universe) PositionWrt(p []float64, b Body) []float64 {
	return sub(p, b.Position)
}

// AccelerationFrom returns the gravitational acceleration -μ (p-pi)/|p-pi|^3
// that a single body exerts at point p.
func (u *Universe) AccelerationFrom(p []float64, b Body) []float64 {
	rel := u.PositionWrt(p, b)
	d := norm(rel)
	f := -u.μ(b) / (d * d * d)
	return []float64{f * rel[0], f * rel[1]}
}

// Acceleration returns the net gravitational acceleration at point p, summed
// over every registered body.
func (u *Universe) Acceleration(p []float64) []float64 {
	a := []float64{0, 0}
	for _, b := range u.bodies {
		ab := u.AccelerationFrom(p, b)
		a[0] += ab[0]
		a[1] += ab[1]
	}
	return a
}

// SurfaceGravity returns μ/R^2 for the named body, a physics sanity check for
// bodies with a known physical radius.
func (u *Universe) SurfaceGravity(name string) (float64, error) {
	b, err := u.Body(name)
	if err != nil {
		return math.NaN(), err
	}
	if b.Radius <= 0 {
		return math.NaN(), fmt.Errorf("%s has unknown radius", name)
	}
	return u.μ(b) / (b.Radius * b.Radius), nil
}
