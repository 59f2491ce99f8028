// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float32
		x              float32
		want           float32
	}{
		{"lands on y1", 0.3, -0.2, 0.9, 0.1, 0, -0.2},
		{"lands on y2", 0.3, -0.2, 0.9, 0.1, 1, 0.9},
		{"ramp quarter", 1, 2, 3, 4, 0.25, 2.25},
		{"ramp three quarters", -3, -1, 1, 3, 0.75, 0.5},
		{"constant", 0.7, 0.7, 0.7, 0.7, 0.4, 0.7},
		{"held edge", 0, 0, 10, 20, 0.5, 4.375},
		{"symmetric peak", 0, 1, 1, 0, 0.5, 1.125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, tt.x)
			if math.Abs(float64(got-tt.want)) > 1e-5 {
				t.Errorf("CubicInterpolate(%v, %v, %v, %v, %v) = %v, want %v",
					tt.y0, tt.y1, tt.y2, tt.y3, tt.x, got, tt.want)
			}
		})
	}
}

func TestCubicInterpolate_LinearStaysLinear(t *testing.T) {
	t.Parallel()

	for i := range 50 {
		base := float32(i) * 0.1
		for x := float32(0); x <= 1; x += 0.125 {
			got := CubicInterpolate(base, base+0.1, base+0.2, base+0.3, x)
			want := base + 0.1 + 0.1*x
			if math.Abs(float64(got-want)) > 1e-5 {
				t.Fatalf("ramp from %v at x=%v: got %v, want %v", base, x, got, want)
			}
		}
	}
}

func TestCubicFrame(t *testing.T) {
	t.Parallel()

	y0 := []float32{0, 1}
	y1 := []float32{1, 2}
	y2 := []float32{2, 3}
	y3 := []float32{3, 4}
	dst := make([]float32, 2)

	CubicFrame(dst, y0, y1, y2, y3, 0.5)

	for c, want := range []float32{1.5, 2.5} {
		if math.Abs(float64(dst[c]-want)) > 1e-6 {
			t.Errorf("channel %d = %v, want %v", c, dst[c], want)
		}
	}
}

func TestCubicFrame_ZeroAllocs(t *testing.T) {
	y := []float32{0.1, 0.2}
	dst := make([]float32, 2)

	allocs := testing.AllocsPerRun(1000, func() {
		CubicFrame(dst, y, y, y, y, 0.3)
	})
	if allocs > 0 {
		t.Errorf("CubicFrame allocated %v times, want 0", allocs)
	}
}

func BenchmarkCubicFrame(b *testing.B) {
	y0 := []float32{0.1, -0.1}
	y1 := []float32{0.5, -0.5}
	y2 := []float32{0.3, -0.3}
	y3 := []float32{-0.2, 0.2}
	dst := make([]float32, 2)

	b.ReportAllocs()
	var x float32
	for b.Loop() {
		CubicFrame(dst, y0, y1, y2, y3, x)
		x += 0.01
		if x >= 1 {
			x = 0
		}
	}
}
