package ott

import (
	"bytes"
	"encoding/csv"
	"math"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/astrionics/ott/nlp"
)

func fakeResult(steps int) nlp.Result {
	n := stateDim*(steps+1) + thrustDim*steps
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i) / 10
	}
	return nlp.Result{Status: nlp.Converged, X: x, Objective: 12.5, Violation: 1e-9}
}

func TestNewSolutionReshapes(t *testing.T) {
	steps := 3
	sol, err := NewSolution(fakeResult(steps), steps)
	if err != nil {
		t.Fatal(err)
	}
	if !sol.Converged || sol.Status != nlp.Converged {
		t.Fatal("converged result not reported as such")
	}
	if len(sol.States) != steps+1 || len(sol.Thrusts) != steps {
		t.Fatalf("reshaped to %d states and %d thrusts", len(sol.States), len(sol.Thrusts))
	}
	if sol.States[1][0] != 0.4 {
		t.Fatalf("state reshaping is off: %v", sol.States[1])
	}
	if sol.Thrusts[0][0] != 1.6 {
		t.Fatalf("thrust reshaping is off: %v", sol.Thrusts[0])
	}
	if sol.Fuel != 12.5 {
		t.Fatalf("fuel %f, want 12.5", sol.Fuel)
	}
}

func TestNewSolutionIdempotent(t *testing.T) {
	res := fakeResult(4)
	a, err := NewSolution(res, 4)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSolution(res, 4)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("rebuilding from the same raw result must yield an identical record")
	}
}

func TestNewSolutionRejectsMismatch(t *testing.T) {
	if _, err := NewSolution(fakeResult(3), 4); err == nil {
		t.Fatal("mismatched variable count accepted")
	}
	if _, err := NewSolution(fakeResult(3), 0); err == nil {
		t.Fatal("zero steps accepted")
	}
}

func TestFuelCost(t *testing.T) {
	thrusts := [][]float64{{1, 0}, {0, 2}}
	// 0.5 * (1 + 4)
	if got := FuelCost(thrusts, 0.5); !scalar.EqualWithinAbs(got, 2.5, 1e-12) {
		t.Fatalf("fuel cost %f, want 2.5", got)
	}
	if FuelCost(nil, 0.5) != 0 {
		t.Fatal("empty thrust sequence must cost nothing")
	}
}

func TestAuditFlagsViolations(t *testing.T) {
	transfer := twoBodyTransfer(t)
	steps := transfer.Steps
	res := nlp.Result{Status: nlp.Converged, X: make([]float64, transfer.numVars())}
	sol, err := NewSolution(res, steps)
	if err != nil {
		t.Fatal(err)
	}
	// The all-zero trajectory sits at the departure body's center: wrong
	// radius at both endpoints, but no limit violations.
	report := transfer.Audit(sol, 1e-6)
	if len(report) == 0 {
		t.Fatal("audit missed the orbit residual violations")
	}
	for _, violation := range report {
		if violation.Kind == "thrust limit" || violation.Kind == "speed limit" {
			t.Fatalf("spurious violation: %s", violation)
		}
	}
}

func TestAuditFlagsSingularTrajectory(t *testing.T) {
	transfer := twoBodyTransfer(t)
	res := nlp.Result{Status: nlp.Converged, X: make([]float64, transfer.numVars())}
	sol, err := NewSolution(res, transfer.Steps)
	if err != nil {
		t.Fatal(err)
	}
	// A state on a body's center turns every residual through its gravity
	// into NaN; the audit must flag it, not let it pass the comparisons.
	copy(sol.States[0][:2], transfer.Depart.Position)
	report := transfer.Audit(sol, 1e-6)
	flagged := false
	for _, violation := range report {
		if violation.Step == 0 && math.IsNaN(violation.Excess) {
			flagged = true
		}
	}
	if !flagged {
		t.Fatal("audit passed a NaN residual")
	}
}

func TestExportCSV(t *testing.T) {
	sol, err := NewSolution(fakeResult(2), 2)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := sol.ExportCSV(&buf); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	// Header plus one row per state.
	if len(records) != 4 {
		t.Fatalf("exported %d rows, want 4", len(records))
	}
	if records[0][0] != "step" || len(records[1]) != 7 {
		t.Fatalf("unexpected CSV shape: %v", records[0])
	}
}
