package frames

import (
	"testing"

	"github.com/gonum/floats"
)

func vectorsEqual(a, b []float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := len(a) - 1; i >= 0; i-- {
		if !floats.EqualWithinAbsOrRel(a[i], b[i], tol, tol) {
			return false
		}
	}
	return true
}

func statesEqual[T Float](t *testing.T, got, exp PosVel[T], tol float64) {
	t.Helper()
	g, e := got.ToArray(), exp.ToArray()
	if !vectorsEqual(toFloat64s(g[:]), toFloat64s(e[:]), tol) {
		t.Fatalf("states differ\ngot: %v\nexp: %v", got, exp)
	}
}
