// Package learning implements the gradient descent stage of the trainer
package learning

import "math"

import "github.com/tonecap/tonecap/layer"

// HyperParameters controls the optimizer and the outer training loop
type HyperParameters struct {

	// LearnRate is the Adam step size
	LearnRate float64

	// Beta1 and Beta2 are the Adam moment decay rates
	Beta1 float64
	Beta2 float64

	// Epsilon keeps the Adam denominator away from zero
	Epsilon float64

	// ClipNorm rescales the global gradient norm down to this bound, 0 disables
	ClipNorm float64

	// Epochs bounds the number of passes over the example pair
	Epochs int

	// Patience is how many epochs without validation improvement are
	// tolerated before the learn rate is halved
	Patience int

	// DisableProgressBar turns the epoch progress bar off
	DisableProgressBar bool
}

// Default fills the zero-valued fields with the standard settings
func (h *HyperParameters) Default() {
	if h.LearnRate == 0 {
		h.LearnRate = 0.005
	}
	if h.Beta1 == 0 {
		h.Beta1 = 0.9
	}
	if h.Beta2 == 0 {
		h.Beta2 = 0.999
	}
	if h.Epsilon == 0 {
		h.Epsilon = 1e-8
	}
	if h.Epochs == 0 {
		h.Epochs = 150
	}
	if h.Patience == 0 {
		h.Patience = 10
	}
}

// Adam holds the per-parameter moment state of the optimizer
type Adam struct {
	hyper  *HyperParameters
	params []*layer.Parameter
	m      [][]float32
	v      [][]float32
	step   int
}

// NewAdam creates an optimizer over the given parameters
func NewAdam(params []*layer.Parameter, hyper *HyperParameters) *Adam {
	hyper.Default()
	a := new(Adam)
	a.hyper = hyper
	a.params = params
	for _, p := range params {
		a.m = append(a.m, make([]float32, len(p.Data)))
		a.v = append(a.v, make([]float32, len(p.Data)))
	}
	return a
}

// GradNorm computes the global gradient norm over all parameters
func (a *Adam) GradNorm() float64 {
	var sum float64
	for _, p := range a.params {
		for _, g := range p.Grad {
			sum += float64(g) * float64(g)
		}
	}
	return math.Sqrt(sum)
}

// Step applies one Adam update and clears the gradients
func (a *Adam) Step() {
	a.step++
	var scale float32 = 1
	if a.hyper.ClipNorm > 0 {
		norm := a.GradNorm()
		if norm > a.hyper.ClipNorm {
			scale = float32(a.hyper.ClipNorm / norm)
		}
	}
	b1 := float32(a.hyper.Beta1)
	b2 := float32(a.hyper.Beta2)
	c1 := 1 / (1 - math.Pow(a.hyper.Beta1, float64(a.step)))
	c2 := 1 / (1 - math.Pow(a.hyper.Beta2, float64(a.step)))
	lr := float32(a.hyper.LearnRate * c1)
	eps := float32(a.hyper.Epsilon)
	for i, p := range a.params {
		m := a.m[i]
		v := a.v[i]
		for j := range p.Data {
			g := p.Grad[j] * scale
			m[j] = b1*m[j] + (1-b1)*g
			v[j] = b2*v[j] + (1-b2)*g*g
			vhat := float64(v[j]) * c2
			p.Data[j] -= lr * m[j] / (float32(math.Sqrt(vhat)) + eps)
			p.Grad[j] = 0
		}
	}
}
