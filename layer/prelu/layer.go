// Package prelu implements a per-channel parametric rectifier layer
package prelu

import "errors"

import "github.com/tonecap/tonecap/layer"

// PReLU scales negative inputs by a learned per-channel slope
type PReLU struct {
	alpha *layer.Parameter
	last  [][]float32
}

// New creates a new PReLU layer over the given channel count
func New(channels int) (p *PReLU, err error) {
	if channels < 1 {
		return nil, errors.New("prelu: channels must be positive")
	}
	p = new(PReLU)
	p.alpha = layer.NewParameter(channels)
	for i := range p.alpha.Data {
		p.alpha.Data[i] = 0.25
	}
	return
}

// MustNew creates a new PReLU layer over the given channel count
func MustNew(channels int) *PReLU {
	p, err := New(channels)
	if err != nil {
		panic(err.Error())
	}
	return p
}

// Forward rectifies in, caching it for Backward
func (p *PReLU) Forward(in [][]float32) [][]float32 {
	p.last = in
	out := layer.Signal(len(in), len(in[0]))
	for c := range in {
		a := p.alpha.Data[c]
		for t, v := range in[c] {
			if v > 0 {
				out[c][t] = v
			} else {
				out[c][t] = a * v
			}
		}
	}
	return out
}

// Backward accumulates the slope gradient and returns the input gradient
func (p *PReLU) Backward(grad [][]float32) [][]float32 {
	if p.last == nil {
		panic("prelu: Backward before Forward")
	}
	din := layer.Signal(len(grad), len(grad[0]))
	for c := range grad {
		a := p.alpha.Data[c]
		var da float32
		for t, g := range grad[c] {
			v := p.last[c][t]
			if v > 0 {
				din[c][t] = g
			} else {
				din[c][t] = a * g
				da += g * v
			}
		}
		p.alpha.Grad[c] += da
	}
	return din
}

// Parameters lists the per-channel slope parameter
func (p *PReLU) Parameters() []*layer.Parameter {
	return []*layer.Parameter{p.alpha}
}

// Alpha exposes the per-channel slope parameter
func (p *PReLU) Alpha() *layer.Parameter {
	return p.alpha
}
