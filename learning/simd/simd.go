// Package simd provides the float kernels the convolution layers run on
package simd

import "github.com/klauspost/cpuid/v2"

// Axpy computes dst[i] += a*x[i] over the shorter of the two slices
var Axpy func(dst, x []float32, a float32)

// Dot computes the inner product of the two slices
var Dot func(x, y []float32) float32

// Sum computes the sum of the slice
var Sum func(x []float32) float32

var kernelParallelism = 1

func init() {
	// Unrolled kernels pay off when the CPU can fuse and overlap the
	// multiply-adds
	if cpuid.CPU.Supports(cpuid.FMA3, cpuid.AVX2) {
		Axpy = axpyUnrolled
		Dot = dotUnrolled
		Sum = sumUnrolled
		kernelParallelism = 8
	} else {
		Axpy = axpyGeneric
		Dot = dotGeneric
		Sum = sumGeneric
		kernelParallelism = 1
	}
}

// Parallelism reports the lane width of the selected kernels
func Parallelism() int {
	return kernelParallelism
}

func axpyGeneric(dst, x []float32, a float32) {
	n := len(dst)
	if len(x) < n {
		n = len(x)
	}
	for i := 0; i < n; i++ {
		dst[i] += a * x[i]
	}
}

func axpyUnrolled(dst, x []float32, a float32) {
	n := len(dst)
	if len(x) < n {
		n = len(x)
	}
	i := 0
	for ; i+8 <= n; i += 8 {
		dst[i] += a * x[i]
		dst[i+1] += a * x[i+1]
		dst[i+2] += a * x[i+2]
		dst[i+3] += a * x[i+3]
		dst[i+4] += a * x[i+4]
		dst[i+5] += a * x[i+5]
		dst[i+6] += a * x[i+6]
		dst[i+7] += a * x[i+7]
	}
	for ; i < n; i++ {
		dst[i] += a * x[i]
	}
}

func dotGeneric(x, y []float32) float32 {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	var acc float32
	for i := 0; i < n; i++ {
		acc += x[i] * y[i]
	}
	return acc
}

func dotUnrolled(x, y []float32) (acc float32) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	var a0, a1, a2, a3 float32
	i := 0
	for ; i+4 <= n; i += 4 {
		a0 += x[i] * y[i]
		a1 += x[i+1] * y[i+1]
		a2 += x[i+2] * y[i+2]
		a3 += x[i+3] * y[i+3]
	}
	acc = a0 + a1 + a2 + a3
	for ; i < n; i++ {
		acc += x[i] * y[i]
	}
	return
}

func sumGeneric(x []float32) float32 {
	var acc float32
	for _, v := range x {
		acc += v
	}
	return acc
}

func sumUnrolled(x []float32) (acc float32) {
	var a0, a1, a2, a3 float32
	i := 0
	for ; i+4 <= len(x); i += 4 {
		a0 += x[i]
		a1 += x[i+1]
		a2 += x[i+2]
		a3 += x[i+3]
	}
	acc = a0 + a1 + a2 + a3
	for ; i < len(x); i++ {
		acc += x[i]
	}
	return
}
