package nlp

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
)

// AugLag solves constrained programs with the classical augmented-Lagrangian
// scheme (method of multipliers): a sequence of unconstrained minimizations
// of the penalized Lagrangian, with multiplier updates between them and a
// penalty that grows whenever feasibility stalls. The inner minimizations run
// on gonum's L-BFGS with central finite-difference gradients, so residuals
// and objective only need to be evaluable, not differentiable in closed form.
//
// Equality and inequality residuals may be nonlinear in the variables.
type AugLag struct {
	Accuracy      float64 // feasibility tolerance for convergence
	OuterIter     int     // multiplier updates before giving up
	InnerIter     int     // L-BFGS iteration cap per subproblem
	Penalty       float64 // initial quadratic penalty weight
	PenaltyGrowth float64 // growth factor when feasibility stalls
	PenaltyMax    float64 // penalty ceiling
}

// NewAugLag returns an AugLag solver with default settings.
func NewAugLag() AugLag {
	return AugLag{
		Accuracy:      1e-8,
		OuterIter:     60,
		InnerIter:     800,
		Penalty:       10,
		PenaltyGrowth: 10,
		PenaltyMax:    1e10,
	}
}

// Solve implements the Solver interface.
func (s AugLag) Solve(p Problem) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{Status: BadProblem}, err
	}

	x := make([]float64, p.N)
	if p.Guess != nil {
		copy(x, p.Guess)
	}

	λ := make([]float64, len(p.EqCons))
	μ := make([]float64, len(p.IneqCons))
	ρ := s.Penalty

	lagrangian := func(pt []float64) float64 {
		l := p.Objective(pt)
		for j, c := range p.EqCons {
			cj := c(pt)
			l += λ[j]*cj + 0.5*ρ*cj*cj
		}
		for j, g := range p.IneqCons {
			// Powell-Hestenes-Rockafellar term for g(x) >= 0.
			t := math.Max(0, μ[j]-ρ*g(pt))
			l += (t*t - μ[j]*μ[j]) / (2 * ρ)
		}
		return l
	}
	grad := func(dst, pt []float64) {
		fd.Gradient(dst, lagrangian, pt, &fd.Settings{Formula: fd.Central})
	}

	prevVio := math.Inf(1)
	vio := s.violation(p, x)
	outer := 0
	for ; outer < s.OuterIter; outer++ {
		prob := optimize.Problem{Func: lagrangian, Grad: grad}
		settings := &optimize.Settings{
			MajorIterations: s.InnerIter,
			Converger:       &optimize.FunctionConverge{Absolute: 1e-14, Iterations: 50},
		}
		res, err := optimize.Minimize(prob, x, settings, &optimize.LBFGS{})
		if res == nil {
			return Result{Status: BadProblem}, err
		}
		// A stalled line search near the solution is routine with finite
		// difference gradients; keep the iterate and let the outer loop
		// decide.
		copy(x, res.X)

		vio = s.violation(p, x)
		if !math.IsNaN(vio) && vio <= s.Accuracy {
			break
		}
		for j, c := range p.EqCons {
			λ[j] += ρ * c(x)
		}
		for j, g := range p.IneqCons {
			μ[j] = math.Max(0, μ[j]-ρ*g(x))
		}
		if vio > 0.25*prevVio {
			ρ = math.Min(ρ*s.PenaltyGrowth, s.PenaltyMax)
		}
		prevVio = vio
	}

	// NaN does not compare greater, so an iterate poisoned by a singular
	// evaluation must be flagged explicitly.
	status := Converged
	if math.IsNaN(vio) || vio > s.Accuracy {
		status = NotConverged
	}
	return Result{
		Status:     status,
		X:          x,
		Objective:  p.Objective(x),
		Violation:  vio,
		Iterations: outer + 1,
	}, nil
}

// violation returns the worst constraint violation at x: |c(x)| over the
// equalities and max(0, -g(x)) over the inequalities.
func (s AugLag) violation(p Problem, x []float64) float64 {
	worst := 0.0
	for _, c := range p.EqCons {
		worst = math.Max(worst, math.Abs(c(x)))
	}
	for _, g := range p.IneqCons {
		worst = math.Max(worst, -g(x))
	}
	return worst
}
