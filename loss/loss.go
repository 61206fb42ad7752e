// Package loss implements the example-pair training objective
package loss

// PreEmphasis is the first-order highpass coefficient applied before the
// error-to-signal ratio, so the match is not dominated by low frequencies
const PreEmphasis = 0.85

// Epsilon keeps the normalizing denominators away from zero
const Epsilon = 1e-8

// preemph computes p(x)[t] = x[t] - a*x[t-1]
func preemph(x []float32, a float32) []float32 {
	o := make([]float32, len(x))
	var prev float32
	for t, v := range x {
		o[t] = v - a*prev
		prev = v
	}
	return o
}

// ESR computes the pre-emphasized error-to-signal ratio of pred against target
func ESR(pred, target []float32) float64 {
	n := len(pred)
	if len(target) < n {
		n = len(target)
	}
	ep := preemph(pred[:n], PreEmphasis)
	et := preemph(target[:n], PreEmphasis)
	var num, den float64
	for t := 0; t < n; t++ {
		e := float64(ep[t]) - float64(et[t])
		num += e * e
		den += float64(et[t]) * float64(et[t])
	}
	return num / (den + Epsilon)
}

// DC computes the squared mean offset of pred against target, normalized by
// the target power
func DC(pred, target []float32) float64 {
	n := len(pred)
	if len(target) < n {
		n = len(target)
	}
	if n == 0 {
		return 0
	}
	var mean, den float64
	for t := 0; t < n; t++ {
		mean += float64(pred[t]) - float64(target[t])
		den += float64(target[t]) * float64(target[t])
	}
	mean /= float64(n)
	den /= float64(n)
	return mean * mean / (den + Epsilon)
}

// Grad computes the training loss ESR+DC and writes its gradient with
// respect to pred into grad
func Grad(pred, target, grad []float32) float64 {
	n := len(pred)
	if len(target) < n {
		n = len(target)
	}
	if n == 0 {
		return 0
	}

	ep := preemph(pred[:n], PreEmphasis)
	et := preemph(target[:n], PreEmphasis)
	var num, den float64
	ee := make([]float64, n)
	for t := 0; t < n; t++ {
		ee[t] = float64(ep[t]) - float64(et[t])
		num += ee[t] * ee[t]
		den += float64(et[t]) * float64(et[t])
	}
	den += Epsilon
	esr := num / den

	var mean, power float64
	for t := 0; t < n; t++ {
		mean += float64(pred[t]) - float64(target[t])
		power += float64(target[t]) * float64(target[t])
	}
	mean /= float64(n)
	power = power/float64(n) + Epsilon
	dc := mean * mean / power

	// d esr / d pred[t] runs the error back through the pre-emphasis filter,
	// d dc / d pred[t] is uniform
	dcg := 2 * mean / (float64(n) * power)
	for t := 0; t < n; t++ {
		g := ee[t]
		if t+1 < n {
			g -= PreEmphasis * ee[t+1]
		}
		grad[t] = float32(2*g/den + dcg)
	}
	for t := n; t < len(grad); t++ {
		grad[t] = 0
	}
	return esr + dc
}
