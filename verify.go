package ott

import (
	"fmt"

	"github.com/ChristopherRabotin/ode"
)

// leg integrates one interval of a solved trajectory under constant thrust.
// It implements ode.Integrable.
type leg struct {
	dyn    Dynamics
	thrust []float64
	state  []float64
	iter   int
	steps  int
}

// GetState implements the ode.Integrable interface.
func (l *leg) GetState() []float64 {
	return l.state
}

// SetState implements the ode.Integrable interface.
func (l *leg) SetState(t float64, s []float64) {
	l.state = s
}

// Stop implements the ode.Integrable interface.
func (l *leg) Stop(t float64) bool {
	if l.iter == l.steps {
		return true
	}
	l.iter++
	return false
}

// Func implements the ode.Integrable interface.
func (l *leg) Func(t float64, s []float64) []float64 {
	return l.dyn.Continuous(s, l.thrust)
}

// VerifyContinuity re-propagates every interval of a solution through an RK4
// integration of the continuous dynamics under the solved thrust schedule and
// returns the worst position gap against the implicit-Euler grid. The gap is
// the discretization error of the backward scheme, O(dt) per interval: a
// quality metric for the chosen time step, not a feasibility test.
func (t *Transfer) VerifyContinuity(sol *Solution, substeps int) (float64, error) {
	if substeps < 1 {
		return 0, fmt.Errorf("substeps must be positive (got %d)", substeps)
	}
	dyn := Dynamics{Universe: t.Universe, Vehicle: t.Vehicle}
	worst := 0.0
	for k := 0; k < t.Steps; k++ {
		start := make([]float64, stateDim)
		copy(start, sol.States[k])
		l := &leg{dyn: dyn, thrust: sol.Thrusts[k], state: start, steps: substeps}
		ode.NewRK4(0, t.Dt/float64(substeps), l).Solve() // Blocking.
		if gap := norm(sub(l.state[:2], sol.States[k+1][:2])); gap > worst {
			worst = gap
		}
	}
	return worst, nil
}
