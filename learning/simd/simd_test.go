package simd

import (
	"testing"
)

// integer-valued inputs keep both kernel variants exact, so they must agree
func fill(n int) (x, y []float32) {
	x = make([]float32, n)
	y = make([]float32, n)
	for i := 0; i < n; i++ {
		x[i] = float32(i%17 - 8)
		y[i] = float32(i%13 - 6)
	}
	return
}

// TestDotKernels verifies the unrolled kernel matches the generic one
func TestDotKernels(t *testing.T) {
	testCases := []struct {
		name string
		size int
	}{
		{"empty", 0},
		{"single", 1},
		{"small", 7},
		{"lane", 8},
		{"medium", 33},
		{"large", 1024},
		{"prime", 131},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			x, y := fill(tc.size)
			want := dotGeneric(x, y)
			got := dotUnrolled(x, y)
			if got != want {
				t.Errorf("dotUnrolled(%d) = %v, want %v", tc.size, got, want)
			}
		})
	}
}

// TestAxpyKernels verifies the unrolled kernel matches the generic one
func TestAxpyKernels(t *testing.T) {
	for _, size := range []int{0, 1, 7, 8, 33, 1024, 131} {
		x, y := fill(size)
		dst1 := append([]float32(nil), y...)
		dst2 := append([]float32(nil), y...)
		axpyGeneric(dst1, x, 3)
		axpyUnrolled(dst2, x, 3)
		for i := range dst1 {
			if dst1[i] != dst2[i] {
				t.Errorf("axpy size %d index %d: got %v, want %v", size, i, dst2[i], dst1[i])
			}
		}
	}
}

// TestSumKernels verifies the unrolled kernel matches the generic one
func TestSumKernels(t *testing.T) {
	for _, size := range []int{0, 1, 7, 8, 33, 1024, 131} {
		x, _ := fill(size)
		if got, want := sumUnrolled(x), sumGeneric(x); got != want {
			t.Errorf("sum size %d: got %v, want %v", size, got, want)
		}
	}
}

// TestAxpyShorterX verifies the kernels clamp to the shorter slice
func TestAxpyShorterX(t *testing.T) {
	dst := []float32{1, 1, 1, 1}
	x := []float32{2, 2}
	Axpy(dst, x, 1)
	if dst[0] != 3 || dst[1] != 3 || dst[2] != 1 || dst[3] != 1 {
		t.Errorf("Axpy wrote past the shorter slice: %v", dst)
	}
}

// performance benchmark
func BenchmarkDot(b *testing.B) {
	x, y := fill(4096)
	for i := 0; i < b.N; i++ {
		Dot(x, y)
	}
}
