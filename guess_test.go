package ott

import (
	"testing"
)

func TestInterpolateStatesShape(t *testing.T) {
	start := []float64{2, 0}
	end := []float64{0, 0}
	states := InterpolateStates(start, end, 10, 1)
	if len(states) != 11 {
		t.Fatalf("expected 11 states, got %d", len(states))
	}
	for k, s := range states {
		if len(s) != stateDim {
			t.Fatalf("state %d has dimension %d", k, len(s))
		}
	}
}

func TestInterpolateStatesDeterministic(t *testing.T) {
	start := []float64{2, 0}
	end := []float64{0, 0}
	a := InterpolateStates(start, end, 5, 42)
	b := InterpolateStates(start, end, 5, 42)
	for k := range a {
		for i := range a[k] {
			if a[k][i] != b[k][i] {
				t.Fatal("same seed must produce the same guess")
			}
		}
	}
	c := InterpolateStates(start, end, 5, 43)
	same := true
	for k := range a {
		for i := range a[k] {
			if a[k][i] != c[k][i] {
				same = false
			}
		}
	}
	if same {
		t.Fatal("different seeds must produce different guesses")
	}
}

func TestInterpolateStatesOffCenters(t *testing.T) {
	start := []float64{2, 0}
	end := []float64{-1, 1}
	states := InterpolateStates(start, end, 8, 1)
	// The endpoints must sit strictly off the body centers: this is the whole
	// point of the perturbation.
	if norm(sub(states[0][:2], start)) == 0 {
		t.Fatal("first sample sits exactly at the start center")
	}
	if norm(sub(states[8][:2], end)) == 0 {
		t.Fatal("last sample sits exactly at the end center")
	}
	// But never far from the interpolation line.
	for k, s := range states {
		α := float64(k) / 8
		ref := []float64{start[0] + α*(end[0]-start[0]), start[1] + α*(end[1]-start[1])}
		if norm(sub(s[:2], ref)) > 2*guessJitter {
			t.Fatalf("state %d strays %e from the interpolation line", k, norm(sub(s[:2], ref)))
		}
		if norm(s[2:]) > 2*guessJitter {
			t.Fatalf("state %d has a large velocity seed %e", k, norm(s[2:]))
		}
	}
}
