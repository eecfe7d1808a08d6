package ott

import (
	"errors"
	"fmt"

	"github.com/astrionics/ott/nlp"
)

// ProblemBuilder accumulates decision variables, constraint residuals and the
// objective of a nonlinear program, then freezes them into an immutable
// nlp.Problem exactly once. It only records expressions over the declared
// variables; nothing is evaluated until the solver iterates.
type ProblemBuilder struct {
	n     int
	obj   nlp.Func
	eqs   []nlp.Func
	ineqs []nlp.Func
	guess []float64
	built bool
}

// NewProblemBuilder returns a builder for a program over n real variables.
func NewProblemBuilder(n int) (*ProblemBuilder, error) {
	if n <= 0 {
		return nil, fmt.Errorf("problem needs a positive number of variables (got %d)", n)
	}
	return &ProblemBuilder{n: n}, nil
}

// NumVars returns the number of declared variables.
func (b *ProblemBuilder) NumVars() int {
	return b.n
}

// AddEquality records a residual which must equal zero at a feasible point.
func (b *ProblemBuilder) AddEquality(f nlp.Func) {
	b.eqs = append(b.eqs, f)
}

// AddInequality records a residual which must be >= 0 at a feasible point.
func (b *ProblemBuilder) AddInequality(f nlp.Func) {
	b.ineqs = append(b.ineqs, f)
}

// SetObjective records the scalar objective to minimize.
func (b *ProblemBuilder) SetObjective(f nlp.Func) {
	b.obj = f
}

// SetGuess records the initial guess for the full variable vector.
func (b *ProblemBuilder) SetGuess(guess []float64) error {
	if len(guess) != b.n {
		return fmt.Errorf("guess has %d components for %d variables", len(guess), b.n)
	}
	b.guess = make([]float64, b.n)
	copy(b.guess, guess)
	return nil
}

// Counts returns the number of recorded equality and inequality residuals.
func (b *ProblemBuilder) Counts() (eq, ineq int) {
	return len(b.eqs), len(b.ineqs)
}

// Build freezes the accumulated program. It may be called only once: the
// returned problem owns the recorded expressions and the builder must not be
// reused.
func (b *ProblemBuilder) Build() (nlp.Problem, error) {
	if b.built {
		return nlp.Problem{}, errors.New("problem already built")
	}
	if b.obj == nil {
		return nlp.Problem{}, errors.New("problem has no objective")
	}
	b.built = true
	p := nlp.Problem{
		N:         b.n,
		Objective: b.obj,
		EqCons:    b.eqs,
		IneqCons:  b.ineqs,
		Guess:     b.guess,
	}
	return p, p.Validate()
}
