package stats

import (
	"math"
	"testing"
)

func TestPercentiles(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50}

	got := Percentiles(values, []float64{0, 50, 100})
	want := []float64{10, 30, 50}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("percentile %d: got %v, want %v", i, got[i], want[i])
		}
	}

	// Interpolated
	if p := Percentile(values, 25); p != 20 {
		t.Fatalf("p25 = %v, want 20", p)
	}
	if p := Percentile([]float64{1, 2}, 50); p != 1.5 {
		t.Fatalf("interpolated median = %v, want 1.5", p)
	}
}

func TestPercentileEmpty(t *testing.T) {
	if p := Percentile(nil, 50); p != 0 {
		t.Fatalf("empty input = %v, want 0", p)
	}
}

func TestMeanAndMedian(t *testing.T) {
	values := []float64{4, 1, 7}
	if m := Mean(values); math.Abs(m-4) > 1e-9 {
		t.Fatalf("mean = %v, want 4", m)
	}
	if m := Median(values); m != 4 {
		t.Fatalf("median = %v, want 4", m)
	}
}

func TestCDF(t *testing.T) {
	values, fractions := CDF([]float64{30, 10, 20})
	if len(values) != 3 {
		t.Fatalf("expected 3 points, got %d", len(values))
	}
	if values[0] != 10 || values[2] != 30 {
		t.Fatalf("values not sorted: %v", values)
	}
	if fractions[2] != 1 {
		t.Fatalf("last fraction = %v, want 1", fractions[2])
	}
}
