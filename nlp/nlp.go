// Package nlp defines a narrow capability interface to a constrained
// nonlinear-programming backend: declare real decision variables with an
// optional initial guess, equality and inequality residuals over them, and a
// scalar objective; solve; read back a value for every variable.
//
// Any compliant backend can sit behind the Solver interface. Backends must
// support nonlinear equality constraints, not only linear ones: implicit
// discretizations produce residuals that are nonlinear in the variables.
package nlp

import (
	"errors"
	"fmt"
)

// Func evaluates a scalar expression at a point.
type Func func(x []float64) float64

// Problem is a fully assembled constrained nonlinear program
//
//	minimize  Objective(x)
//	s.t.      c(x)  = 0  for every c in EqCons
//	          g(x) >= 0  for every g in IneqCons
//
// over x in R^N. Once handed to a Solver the problem must be treated as
// read-only.
type Problem struct {
	N         int
	Objective Func
	EqCons    []Func
	IneqCons  []Func
	Guess     []float64 // optional starting point, length N
}

// Validate eagerly rejects malformed programs before any solve is attempted.
func (p Problem) Validate() error {
	if p.N <= 0 {
		return fmt.Errorf("nlp: dimension must be positive (got %d)", p.N)
	}
	if p.Objective == nil {
		return errors.New("nlp: objective is not set")
	}
	if p.Guess != nil && len(p.Guess) != p.N {
		return fmt.Errorf("nlp: guess has %d components for %d variables", len(p.Guess), p.N)
	}
	return nil
}

// Status describes the outcome of a solve.
type Status uint8

const (
	// Converged means every constraint is satisfied within the solver's
	// accuracy and the objective is locally optimal.
	Converged Status = iota + 1
	// NotConverged means the solver stopped without a feasible point; the
	// returned values are a best effort and must not be used as a solution.
	NotConverged
	// BadProblem means the program itself was rejected.
	BadProblem
)

// String implements the Stringer interface.
func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case NotConverged:
		return "not converged"
	case BadProblem:
		return "bad problem"
	}
	return "unknown"
}

// Result is the outcome of a solve: the status, a value for every declared
// variable, the objective at that point, and the worst constraint violation
// observed there.
type Result struct {
	Status     Status
	X          []float64
	Objective  float64
	Violation  float64
	Iterations int
}

// Solver is the external nonlinear-programming capability consumed by the
// problem assembler. Solve blocks until the backend terminates; it returns an
// error only for malformed programs, and reports non-convergence through the
// Result status.
type Solver interface {
	Solve(p Problem) (Result, error)
}
