package loss

import "math"
import "math/cmplx"

import "gonum.org/v1/gonum/dsp/fourier"

// stft resolutions, hop is a quarter window
var spectralSizes = []int{512, 1024, 2048}

func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

func logMagnitudes(x []float32, n, hop int, win []float64, fft *fourier.FFT) []float64 {
	frames := 1 + (len(x)-n)/hop
	buf := make([]float64, n)
	mags := make([]float64, 0, frames*(n/2))
	for i := 0; i < frames; i++ {
		start := i * hop
		for k := 0; k < n; k++ {
			buf[k] = float64(x[start+k]) * win[k]
		}
		coefs := fft.Coefficients(nil, buf)
		for _, c := range coefs[:n/2] {
			mags = append(mags, math.Log(cmplx.Abs(c)+Epsilon))
		}
	}
	return mags
}

// SpectralDistance computes the mean absolute log-magnitude STFT difference
// of pred against target over several resolutions. It is an evaluation
// metric only; training gradients come from Grad.
func SpectralDistance(pred, target []float32) float64 {
	n := len(pred)
	if len(target) < n {
		n = len(target)
	}
	var total float64
	var used int
	for _, size := range spectralSizes {
		if n < size {
			continue
		}
		win := hann(size)
		fft := fourier.NewFFT(size)
		a := logMagnitudes(pred[:n], size, size/4, win, fft)
		b := logMagnitudes(target[:n], size, size/4, win, fft)
		var d float64
		for i := range a {
			d += math.Abs(a[i] - b[i])
		}
		total += d / float64(len(a))
		used++
	}
	if used == 0 {
		return 0
	}
	return total / float64(used)
}
