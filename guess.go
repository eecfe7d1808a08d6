package ott

import "math/rand"

// guessJitter is the magnitude of the perturbation added to every component
// of the interpolated seed trajectory. Small compared to any orbital scale,
// large enough to keep every sampled point strictly off the body centers.
const guessJitter = 1e-3

// InterpolateStates returns the seed trajectory used as the solver's initial
// guess: a first-order hold on position between the two endpoints, zero
// velocity throughout, plus a small deterministic perturbation of every
// component. A literal straight line would place the first and last samples
// exactly at a body center, where gravity is singular and the solver's very
// first residual evaluation would blow up.
//
// The result is a pure function of (start, end, steps, seed): the same seed
// always produces the same trajectory.
func InterpolateStates(start, end []float64, steps int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	states := make([][]float64, steps+1)
	for t := 0; t <= steps; t++ {
		α := float64(t) / float64(steps)
		states[t] = []float64{
			start[0] + α*(end[0]-start[0]) + rng.Float64()*guessJitter,
			start[1] + α*(end[1]-start[1]) + rng.Float64()*guessJitter,
			rng.Float64() * guessJitter,
			rng.Float64() * guessJitter,
		}
	}
	return states
}
