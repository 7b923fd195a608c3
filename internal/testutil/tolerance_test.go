package testutil

import "testing"

func TestRequireFinitePasses(t *testing.T) {
	RequireFinite(t, []float64{0, -1.5, 1e300})
}

func TestRequireNearlyEqualPasses(t *testing.T) {
	RequireNearlyEqual(t, []float64{1.0, 2.0}, []float64{1.0, 2.0 + 1e-12}, 1e-9)
}
