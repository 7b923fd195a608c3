package series

import (
	"errors"
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	if got := Mean([]float64{1, 2, 3}); got != 2 {
		t.Fatalf("got %v, want 2", got)
	}
	if got := Mean(nil); got != 0 {
		t.Fatalf("empty: got %v, want 0", got)
	}
}

func TestMeanStdPopulation(t *testing.T) {
	mean, std := MeanStd([]float64{1, 2, 3, 4})
	if mean != 2.5 {
		t.Fatalf("mean = %v, want 2.5", mean)
	}
	// Population std: sqrt(((1.5)^2+(0.5)^2+(0.5)^2+(1.5)^2)/4) = sqrt(1.25).
	if want := math.Sqrt(1.25); math.Abs(std-want) > 1e-12 {
		t.Fatalf("std = %v, want %v", std, want)
	}
}

func TestMeanStdConstantSeries(t *testing.T) {
	mean, std := MeanStd([]float64{3, 3, 3, 3})
	if mean != 3 || std != 0 {
		t.Fatalf("got mean=%v std=%v, want 3, 0", mean, std)
	}
}

func TestMeanStdMatchesTwoPass(t *testing.T) {
	values := []float64{0.3, -1.2, 4.5, 2.2, -0.7, 1.1, 0.05}

	mean, std := MeanStd(values)

	twoPassMean := Mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - twoPassMean
		sumSq += d * d
	}
	twoPassStd := math.Sqrt(sumSq / float64(len(values)))

	if math.Abs(mean-twoPassMean) > 1e-12 || math.Abs(std-twoPassStd) > 1e-12 {
		t.Fatalf("single-pass (%v, %v) != two-pass (%v, %v)", mean, std, twoPassMean, twoPassStd)
	}
}

func TestVariance(t *testing.T) {
	if got := Variance([]float64{1, 2, 3, 4}); math.Abs(got-1.25) > 1e-12 {
		t.Fatalf("got %v, want 1.25", got)
	}
}

func TestLinearFitExactLine(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := []float64{1, 3, 5, 7, 9} // y = 2x + 1

	slope, intercept, err := LinearFit(x, y)
	if err != nil {
		t.Fatalf("LinearFit: %v", err)
	}
	if math.Abs(slope-2) > 1e-12 || math.Abs(intercept-1) > 1e-12 {
		t.Fatalf("got slope=%v intercept=%v, want 2, 1", slope, intercept)
	}
}

func TestLinearFitErrors(t *testing.T) {
	if _, _, err := LinearFit([]float64{1, 2}, []float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err = %v, want ErrLengthMismatch", err)
	}
	if _, _, err := LinearFit([]float64{1}, []float64{1}); err == nil {
		t.Fatal("expected error for single point")
	}
	if _, _, err := LinearFit([]float64{2, 2, 2}, []float64{1, 2, 3}); err == nil {
		t.Fatal("expected error for constant x")
	}
}

func TestRMS(t *testing.T) {
	if got := RMS([]float64{3, -4}); math.Abs(got-math.Sqrt(12.5)) > 1e-12 {
		t.Fatalf("got %v, want %v", got, math.Sqrt(12.5))
	}
	if got := RMS(nil); got != 0 {
		t.Fatalf("empty: got %v, want 0", got)
	}
}
