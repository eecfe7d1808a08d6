package ott

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// norm returns the norm of a given vector which is supposed to be 2x1.
func norm(v []float64) float64 {
	return math.Hypot(v[0], v[1])
}

// dot performs the 2D inner product.
func dot(a, b []float64) float64 {
	return a[0]*b[0] + a[1]*b[1]
}

// sub returns the difference a - b of two 2D vectors.
func sub(a, b []float64) []float64 {
	return []float64{a[0] - b[0], a[1] - b[1]}
}

// unit returns the unit vector of a given vector.
func unit(a []float64) (b []float64) {
	n := norm(a)
	if scalar.EqualWithinAbs(n, 0, 1e-12) {
		return []float64{0, 0}
	}
	return []float64{a[0] / n, a[1] / n}
}
