package spike

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		values []int64
		want   float64
	}{
		{name: "empty", values: nil, want: 0},
		{name: "single", values: []int64{42}, want: 42},
		{name: "several", values: []int64{10, 20, 30}, want: 20},
		{name: "uneven", values: []int64{1, 2}, want: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.values); got != tt.want {
				t.Errorf("Mean() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStdDev(t *testing.T) {
	tests := []struct {
		name   string
		values []int64
		mean   float64
		want   float64
	}{
		{name: "empty", values: nil, mean: 0, want: 0},
		{name: "single value", values: []int64{10}, mean: 10, want: 0},
		{name: "no variance", values: []int64{5, 5, 5}, mean: 5, want: 0},
		// population std dev divides by N: ((4+4)/2) = 4, sqrt = 2
		{name: "two values", values: []int64{8, 12}, mean: 10, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StdDev(tt.values, tt.mean)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("StdDev() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPercentile(t *testing.T) {
	sorted := []int64{9, 10, 10, 11, 12}

	tests := []struct {
		name string
		p    float64
		want int64
	}{
		{name: "median", p: 50, want: 10},
		{name: "p90", p: 90, want: 12},
		{name: "p0 clamps to first", p: 0, want: 9},
		{name: "p100 clamps to last", p: 100, want: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentile(sorted, tt.p); got != tt.want {
				t.Errorf("Percentile(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	if got := Percentile(nil, 50); got != 0 {
		t.Errorf("Percentile(empty) = %v, want 0", got)
	}
}

func TestPercentileWithinBounds(t *testing.T) {
	sorted := []int64{3, 7, 7, 20, 100}
	for p := 0.0; p <= 100; p += 5 {
		got := Percentile(sorted, p)
		if got < sorted[0] || got > sorted[len(sorted)-1] {
			t.Errorf("Percentile(%v) = %v, outside [%v, %v]", p, got, sorted[0], sorted[len(sorted)-1])
		}
	}
}
