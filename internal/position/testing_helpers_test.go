package position

import (
	"math"
	"testing"
)

func assertFloat(t *testing.T, expected, actual float64, msg string) {
	t.Helper()
	if math.Abs(expected-actual) > 1e-9 {
		t.Errorf("%s: expected %.4f, got %.4f", msg, expected, actual)
	}
}

func assertInt(t *testing.T, expected, actual int64, msg string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %d, got %d", msg, expected, actual)
	}
}
