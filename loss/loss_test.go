package loss

import (
	"math"
	"testing"
)

func sine(n int, freq, amp float64) []float32 {
	o := make([]float32, n)
	for i := range o {
		o[i] = float32(amp * math.Sin(2*math.Pi*freq*float64(i)))
	}
	return o
}

// TestESRZeroOnMatch checks a perfect prediction scores zero
func TestESRZeroOnMatch(t *testing.T) {
	x := sine(1000, 0.01, 0.8)
	if got := ESR(x, x); got != 0 {
		t.Errorf("ESR of identical signals = %v, want 0", got)
	}
	if got := DC(x, x); got != 0 {
		t.Errorf("DC of identical signals = %v, want 0", got)
	}
}

// TestESROrdering checks a worse prediction scores worse
func TestESROrdering(t *testing.T) {
	target := sine(1000, 0.01, 0.8)
	near := make([]float32, len(target))
	far := make([]float32, len(target))
	for i := range target {
		near[i] = target[i] * 0.9
		far[i] = target[i] * 0.5
	}
	if ESR(near, target) >= ESR(far, target) {
		t.Error("closer prediction did not score lower")
	}
}

// TestDCOffset checks the DC term sees a constant offset the ESR highpass hides
func TestDCOffset(t *testing.T) {
	target := sine(1000, 0.01, 0.8)
	shifted := make([]float32, len(target))
	for i := range target {
		shifted[i] = target[i] + 0.5
	}
	if DC(shifted, target) <= 0 {
		t.Error("DC term missed a constant offset")
	}
}

// TestGradMatchesFiniteDifference checks the analytic gradient numerically
func TestGradMatchesFiniteDifference(t *testing.T) {
	target := sine(64, 0.05, 0.8)
	pred := sine(64, 0.05, 0.6)
	for i := range pred {
		pred[i] += float32(0.1 * math.Cos(float64(i)))
	}

	grad := make([]float32, len(pred))
	Grad(pred, target, grad)

	lossAt := func() float64 {
		return ESR(pred, target) + DC(pred, target)
	}

	const h = 1e-3
	for _, i := range []int{0, 1, 13, 31, 62, 63} {
		orig := pred[i]
		pred[i] = orig + h
		lp := lossAt()
		pred[i] = orig - h
		lm := lossAt()
		pred[i] = orig
		want := (lp - lm) / (2 * h)
		if math.Abs(float64(grad[i])-want) > 1e-2*(math.Abs(want)+1e-3) {
			t.Errorf("grad[%d] = %v, want %v", i, grad[i], want)
		}
	}
}

// TestGradZeroOnMatch checks the gradient vanishes at the optimum
func TestGradZeroOnMatch(t *testing.T) {
	x := sine(256, 0.02, 0.7)
	grad := make([]float32, len(x))
	if got := Grad(x, x, grad); got != 0 {
		t.Errorf("loss of identical signals = %v, want 0", got)
	}
	for i, g := range grad {
		if g != 0 {
			t.Errorf("grad[%d] = %v, want 0", i, g)
		}
	}
}

// TestSpectralDistance checks zero on match and sensitivity to distortion
func TestSpectralDistance(t *testing.T) {
	x := sine(4096, 0.01, 0.8)
	if got := SpectralDistance(x, x); got != 0 {
		t.Errorf("distance of identical signals = %v, want 0", got)
	}
	clipped := make([]float32, len(x))
	for i, v := range x {
		if v > 0.3 {
			v = 0.3
		} else if v < -0.3 {
			v = -0.3
		}
		clipped[i] = v
	}
	if SpectralDistance(clipped, x) <= 0 {
		t.Error("distance missed a hard clip")
	}
}

// TestSpectralDistanceShortClip checks clips below the smallest window
func TestSpectralDistanceShortClip(t *testing.T) {
	x := sine(100, 0.05, 0.5)
	y := sine(100, 0.07, 0.5)
	if got := SpectralDistance(x, y); got != 0 {
		t.Errorf("short clip distance = %v, want 0 (no full window fits)", got)
	}
}
