package ott

import (
	"fmt"
	"math"

	"github.com/astrionics/ott/nlp"
)

// Solution is the validated outcome of a solved transfer: the optimal state
// and thrust sequences reshaped from the solver's flat variable vector, and
// the realized fuel cost. Building a Solution is pure post-processing:
// rebuilding it from the same raw solver result yields an identical record.
type Solution struct {
	Converged     bool
	Status        nlp.Status
	States        [][]float64 // N+1 states of dimension 4
	Thrusts       [][]float64 // N thrusts of dimension 2
	Fuel          float64     // realized objective value
	Infeasibility float64     // worst constraint violation reported by the solver
}

// NewSolution reshapes a raw solver result into a Solution for a transfer of
// the given number of time steps.
func NewSolution(res nlp.Result, steps int) (*Solution, error) {
	if steps < 1 {
		return nil, fmt.Errorf("time steps must be positive (got %d)", steps)
	}
	want := stateDim*(steps+1) + thrustDim*steps
	if len(res.X) != want {
		return nil, fmt.Errorf("solver returned %d values for %d variables", len(res.X), want)
	}
	sol := &Solution{
		Converged:     res.Status == nlp.Converged,
		Status:        res.Status,
		States:        make([][]float64, steps+1),
		Thrusts:       make([][]float64, steps),
		Fuel:          res.Objective,
		Infeasibility: res.Violation,
	}
	for k := 0; k <= steps; k++ {
		s := make([]float64, stateDim)
		copy(s, res.X[stateDim*k:stateDim*(k+1)])
		sol.States[k] = s
	}
	off := stateDim * (steps + 1)
	for k := 0; k < steps; k++ {
		u := make([]float64, thrustDim)
		copy(u, res.X[off+thrustDim*k:off+thrustDim*(k+1)])
		sol.Thrusts[k] = u
	}
	return sol, nil
}

// FuelCost returns the discrete approximation of the thrust-energy integral
// h * Σ u·u for a thrust sequence.
func FuelCost(thrusts [][]float64, dt float64) float64 {
	cost := 0.0
	for _, u := range thrusts {
		cost += dt * dot(u, u)
	}
	return cost
}

// Violation reports one constraint violated by a solution beyond tolerance.
type Violation struct {
	Step   int
	Kind   string
	Excess float64
}

// String implements the Stringer interface.
func (v Violation) String() string {
	return fmt.Sprintf("step %d: %s exceeded by %e", v.Step, v.Kind, v.Excess)
}

// Audit checks a solution against every path and boundary constraint of the
// transfer within the given tolerance and reports the violations found. An
// empty report means the trajectory respects the thrust and speed limits,
// stays outside every keep-out zone, and starts and ends on the required
// orbits.
func (t *Transfer) Audit(sol *Solution, tol float64) []Violation {
	var report []Violation
	for k, u := range sol.Thrusts {
		if excess := norm(u) - t.Vehicle.ThrustLimit; exceeds(excess, tol) {
			report = append(report, Violation{Step: k, Kind: "thrust limit", Excess: excess})
		}
	}
	for k, s := range sol.States {
		if excess := norm(s[2:]) - t.Vehicle.SpeedLimit; exceeds(excess, tol) {
			report = append(report, Violation{Step: k, Kind: "speed limit", Excess: excess})
		}
	}
	for _, obs := range t.Obstacles() {
		for k, s := range sol.States {
			if excess := obs.Orbit - norm(t.Universe.PositionWrt(s[:2], obs)); exceeds(excess, tol) {
				report = append(report, Violation{Step: k, Kind: "keep-out zone of " + obs.Name, Excess: excess})
			}
		}
	}
	for i, r := range t.Universe.OrbitResiduals(sol.States[0], t.Depart) {
		if excess := math.Abs(r) - tol; exceeds(excess, 0) {
			report = append(report, Violation{Step: 0, Kind: fmt.Sprintf("departure orbit residual %d", i), Excess: excess})
		}
	}
	last := len(sol.States) - 1
	for i, r := range t.Universe.OrbitResiduals(sol.States[last], t.Arrive) {
		if excess := math.Abs(r) - tol; exceeds(excess, 0) {
			report = append(report, Violation{Step: last, Kind: fmt.Sprintf("arrival orbit residual %d", i), Excess: excess})
		}
	}
	return report
}

// exceeds treats a NaN excess as a violation: NaN never compares greater, so
// a trajectory poisoned by a singular evaluation must not audit clean.
func exceeds(excess, tol float64) bool {
	return math.IsNaN(excess) || excess > tol
}
