package ott

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func testDynamics(t *testing.T) (Dynamics, Body) {
	t.Helper()
	b, _ := NewBody("Alpha", 4, []float64{1, -1}, 2)
	u, err := NewUniverse(1, b)
	if err != nil {
		t.Fatal(err)
	}
	v, err := NewVehicle("probe", 2, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	return Dynamics{Universe: u, Vehicle: v}, b
}

func TestContinuousDynamics(t *testing.T) {
	dyn, _ := testDynamics(t)
	state := []float64{3, -1, 0.5, -0.25}
	thrust := []float64{1, -2}
	sDot := dyn.Continuous(state, thrust)
	if sDot[0] != state[2] || sDot[1] != state[3] {
		t.Fatal("position derivative must be the velocity")
	}
	// Gravity at distance 2 along x: |a| = 4/4 = 1 toward the body.
	if !scalar.EqualWithinAbs(sDot[2], thrust[0]/2-1, 1e-12) {
		t.Fatalf("incorrect x acceleration %f", sDot[2])
	}
	if !scalar.EqualWithinAbs(sDot[3], thrust[1]/2, 1e-12) {
		t.Fatalf("incorrect y acceleration %f", sDot[3])
	}
}

func TestDiscreteResidualRoundTrip(t *testing.T) {
	dyn, _ := testDynamics(t)
	state := []float64{3, -1, 0.1, 0.2}
	next := []float64{3.2, -0.8, 0.05, 0.3}
	thrust := []float64{0.4, -0.1}
	h := 0.5
	r := dyn.DiscreteResidual(state, next, thrust, h)
	// Recover next through the explicit form of the implicit relation:
	// next = state + h*f(next, u) + r.
	sDot := dyn.Continuous(next, thrust)
	for i := 0; i < stateDim; i++ {
		if got := state[i] + h*sDot[i] + r[i]; !scalar.EqualWithinAbs(got, next[i], 1e-12) {
			t.Fatalf("component %d does not round trip: %f != %f", i, got, next[i])
		}
	}
}

func TestDiscreteResidualZeroOnConsistentPair(t *testing.T) {
	dyn, _ := testDynamics(t)
	state := []float64{3, -1, 0.1, 0.2}
	thrust := []float64{0.4, -0.1}
	h := 0.25
	// Fixed-point iteration on the backward-Euler update converges for this
	// mild field and yields a pair with zero residual by construction.
	next := append([]float64{}, state...)
	for i := 0; i < 200; i++ {
		sDot := dyn.Continuous(next, thrust)
		for j := 0; j < stateDim; j++ {
			next[j] = state[j] + h*sDot[j]
		}
	}
	r := dyn.DiscreteResidual(state, next, thrust, h)
	for i, ri := range r {
		if !scalar.EqualWithinAbs(ri, 0, 1e-9) {
			t.Fatalf("residual component %d is %e", i, ri)
		}
	}
}

// orbitState returns a state on the circular orbit of b at angle θ, with the
// tangential speed sqrt(μ/r) that balances gravity.
func orbitState(u *Universe, b Body, θ float64) []float64 {
	r := b.Orbit
	speed := math.Sqrt(u.G * b.Mass / r)
	sθ, cθ := math.Sincos(θ)
	return []float64{
		b.Position[0] + r*cθ,
		b.Position[1] + r*sθ,
		-speed * sθ,
		speed * cθ,
	}
}

func TestOrbitResidualsZeroOnOrbit(t *testing.T) {
	dyn, b := testDynamics(t)
	for _, θ := range []float64{0, math.Pi / 3, math.Pi, 4.2} {
		state := orbitState(dyn.Universe, b, θ)
		for i, r := range dyn.Universe.OrbitResiduals(state, b) {
			if !scalar.EqualWithinAbs(r, 0, 1e-12) {
				t.Fatalf("θ=%f: residual component %d is %e", θ, i, r)
			}
		}
	}
}

func TestOrbitResidualsCatchFallingState(t *testing.T) {
	dyn, b := testDynamics(t)
	// On the orbit with zero velocity: radial distance and velocity residuals
	// vanish but the state is falling in, which only the acceleration
	// residual detects.
	state := []float64{b.Position[0] + b.Orbit, b.Position[1], 0, 0}
	r := dyn.Universe.OrbitResiduals(state, b)
	if !scalar.EqualWithinAbs(r[0], 0, 1e-12) || !scalar.EqualWithinAbs(r[1], 0, 1e-12) {
		t.Fatalf("first two residuals should vanish, got %v", r)
	}
	if scalar.EqualWithinAbs(r[2], 0, 1e-9) {
		t.Fatal("acceleration residual must flag a falling state")
	}
}

func TestOrbitResidualsWrongRadius(t *testing.T) {
	dyn, b := testDynamics(t)
	state := orbitState(dyn.Universe, b, 1)
	state[0] += 0.5 // push off the orbit
	r := dyn.Universe.OrbitResiduals(state, b)
	if scalar.EqualWithinAbs(r[0], 0, 1e-9) {
		t.Fatal("radial distance residual must flag an off-orbit state")
	}
}
