package ott

import (
	"errors"
	"fmt"

	kitlog "github.com/go-kit/kit/log"

	"github.com/astrionics/ott/nlp"
)

// ErrNotConverged is returned by Solve when the backend stops without a
// feasible trajectory. The partial solution is still returned for inspection
// but must not be flown. The transfer never retries by itself; re-seeding the
// guess and resubmitting is caller policy.
var ErrNotConverged = errors.New("solver did not converge to a feasible trajectory")

// DefaultGuessSeed seeds the perturbation of the interpolated initial guess.
const DefaultGuessSeed int64 = 1

/* Handles the orbit-to-orbit transfer optimization. */

// Transfer defines a minimum-fuel transfer between the circular orbits of two
// bodies and assembles it into a constrained nonlinear program: state and
// thrust sequences as variables, boundary and dynamics equalities, actuation
// and keep-out inequalities, and the thrust-energy objective.
type Transfer struct {
	Universe  *Universe
	Vehicle   Vehicle
	Depart    Body
	Arrive    Body
	Steps     int     // number of time steps N
	Dt        float64 // time-step length
	GuessSeed int64
	logger    kitlog.Logger
}

// NewTransfer returns a transfer after validating the discretization and
// resolving both endpoint bodies. Every malformed parameter is rejected here,
// before any solver call is attempted.
func NewTransfer(u *Universe, v Vehicle, depart, arrive string, steps int, dt float64) (*Transfer, error) {
	if u == nil {
		return nil, errors.New("transfer needs a universe")
	}
	if steps < 1 {
		return nil, fmt.Errorf("time steps must be positive (got %d)", steps)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("time-step length must be positive (got %f)", dt)
	}
	from, err := u.Body(depart)
	if err != nil {
		return nil, err
	}
	to, err := u.Body(arrive)
	if err != nil {
		return nil, err
	}
	if from.Orbit <= 0 {
		return nil, fmt.Errorf("%s has no orbit to depart from", from.Name)
	}
	if to.Orbit <= 0 {
		return nil, fmt.Errorf("%s has no orbit to arrive at", to.Name)
	}
	if from.Equals(to) {
		return nil, fmt.Errorf("depart and arrive bodies are both %s", from.Name)
	}
	return &Transfer{
		Universe:  u,
		Vehicle:   v,
		Depart:    from,
		Arrive:    to,
		Steps:     steps,
		Dt:        dt,
		GuessSeed: DefaultGuessSeed,
		logger:    kitlog.NewNopLogger(),
	}, nil
}

// SetLogger sets the logger used during assembly and solving.
func (t *Transfer) SetLogger(logger kitlog.Logger) {
	t.logger = logger
}

// Obstacles returns the bodies whose keep-out zone constrains the trajectory:
// every body with a positive exclusion radius other than the two endpoints.
func (t *Transfer) Obstacles() []Body {
	var obstacles []Body
	for _, b := range t.Universe.Bodies() {
		if b.Orbit > 0 && !b.Equals(t.Depart) && !b.Equals(t.Arrive) {
			obstacles = append(obstacles, b)
		}
	}
	return obstacles
}

// numVars returns the size of the flat decision vector: N+1 states of
// dimension 4 followed by N thrusts of dimension 2.
func (t *Transfer) numVars() int {
	return stateDim*(t.Steps+1) + thrustDim*t.Steps
}

// stateAt returns the k-th state inside the flat decision vector.
func (t *Transfer) stateAt(x []float64, k int) []float64 {
	return x[stateDim*k : stateDim*(k+1)]
}

// thrustAt returns the k-th thrust inside the flat decision vector.
func (t *Transfer) thrustAt(x []float64, k int) []float64 {
	off := stateDim * (t.Steps + 1)
	return x[off+thrustDim*k : off+thrustDim*(k+1)]
}

// Guess returns the seed state trajectory for this transfer.
func (t *Transfer) Guess() [][]float64 {
	return InterpolateStates(t.Depart.Position, t.Arrive.Position, t.Steps, t.GuessSeed)
}

// BuildProblem assembles the full program. Variables are declared first, then
// the boundary equalities, the per-step dynamics equalities, the path
// inequalities and the fuel objective; the guess seeds the state variables
// only, thrusts start at zero.
func (t *Transfer) BuildProblem() (nlp.Problem, error) {
	b, err := NewProblemBuilder(t.numVars())
	if err != nil {
		return nlp.Problem{}, err
	}
	dyn := Dynamics{Universe: t.Universe, Vehicle: t.Vehicle}

	// Pin the first state to the departure orbit and the last one to the
	// destination orbit.
	for i := 0; i < 3; i++ {
		i := i
		b.AddEquality(func(x []float64) float64 {
			return t.Universe.OrbitResiduals(t.stateAt(x, 0), t.Depart)[i]
		})
	}
	for i := 0; i < 3; i++ {
		i := i
		b.AddEquality(func(x []float64) float64 {
			return t.Universe.OrbitResiduals(t.stateAt(x, t.Steps), t.Arrive)[i]
		})
	}

	// Implicit-Euler dynamics between every consecutive pair of states.
	for k := 0; k < t.Steps; k++ {
		k := k
		for i := 0; i < stateDim; i++ {
			i := i
			b.AddEquality(func(x []float64) float64 {
				return dyn.DiscreteResidual(t.stateAt(x, k), t.stateAt(x, k+1), t.thrustAt(x, k), t.Dt)[i]
			})
		}
	}

	// Thrust bound, in squared form to stay smooth at the origin.
	uMax2 := t.Vehicle.ThrustLimit * t.Vehicle.ThrustLimit
	for k := 0; k < t.Steps; k++ {
		k := k
		b.AddInequality(func(x []float64) float64 {
			u := t.thrustAt(x, k)
			return uMax2 - dot(u, u)
		})
	}

	// Speed bound on every state.
	vMax2 := t.Vehicle.SpeedLimit * t.Vehicle.SpeedLimit
	for k := 0; k <= t.Steps; k++ {
		k := k
		b.AddInequality(func(x []float64) float64 {
			v := t.stateAt(x, k)[2:]
			return vMax2 - dot(v, v)
		})
	}

	// Keep-out zone of every obstacle, at every state. This block dominates
	// the problem size.
	for _, obs := range t.Obstacles() {
		obs := obs
		r2 := obs.Orbit * obs.Orbit
		for k := 0; k <= t.Steps; k++ {
			k := k
			b.AddInequality(func(x []float64) float64 {
				d := t.Universe.PositionWrt(t.stateAt(x, k)[:2], obs)
				return dot(d, d) - r2
			})
		}
	}

	// Discrete approximation of the thrust-energy integral.
	h := t.Dt
	b.SetObjective(func(x []float64) float64 {
		cost := 0.0
		for k := 0; k < t.Steps; k++ {
			u := t.thrustAt(x, k)
			cost += h * dot(u, u)
		}
		return cost
	})

	guess := make([]float64, t.numVars())
	for k, s := range t.Guess() {
		copy(t.stateAt(guess, k), s)
	}
	if err := b.SetGuess(guess); err != nil {
		return nlp.Problem{}, err
	}

	eq, ineq := b.Counts()
	t.logger.Log("level", "info", "subsys", "trajopt", "status", "assembled",
		"vars", b.NumVars(), "eq", eq, "ineq", ineq, "obstacles", len(t.Obstacles()))
	return b.Build()
}

// Solve assembles the program, hands it to the solver and validates the
// outcome. On success the solution holds the optimal state and thrust
// sequences and the realized fuel cost; a non-convergent solve returns the
// raw outcome together with ErrNotConverged, never a silent best effort.
func (t *Transfer) Solve(solver nlp.Solver) (*Solution, error) {
	p, err := t.BuildProblem()
	if err != nil {
		return nil, err
	}
	t.logger.Log("level", "info", "subsys", "trajopt", "status", "solving",
		"from", t.Depart.Name, "to", t.Arrive.Name, "steps", t.Steps, "dt", t.Dt)
	res, err := solver.Solve(p)
	if err != nil {
		return nil, err
	}
	sol, err := NewSolution(res, t.Steps)
	if err != nil {
		return nil, err
	}
	if !sol.Converged {
		t.logger.Log("level", "warning", "subsys", "trajopt", "status", res.Status.String(),
			"violation", res.Violation)
		return sol, ErrNotConverged
	}
	t.logger.Log("level", "notice", "subsys", "trajopt", "status", "finished",
		"fuel", sol.Fuel, "violation", res.Violation, "iterations", res.Iterations)
	return sol, nil
}
