// Package conv1d implements a dilated causal 1-D convolution layer
package conv1d

import "errors"
import "math"
import "math/rand"

import "github.com/tonecap/tonecap/layer"
import "github.com/tonecap/tonecap/learning/simd"

// Conv1D convolves [in][time] signals down to [out][time] with left zero
// padding, so the output at time t only sees input up to time t
type Conv1D struct {
	in, out, kernel, dilation int

	weight *layer.Parameter
	bias   *layer.Parameter

	padded [][]float32
	length int
}

// New creates a new Conv1D layer with in/out channels, kernel size and dilation
func New(in, out, kernel, dilation int) (c *Conv1D, err error) {
	if in < 1 || out < 1 || kernel < 1 || dilation < 1 {
		return nil, errors.New("conv1d: channels, kernel and dilation must be positive")
	}
	c = new(Conv1D)
	c.in = in
	c.out = out
	c.kernel = kernel
	c.dilation = dilation
	c.weight = layer.NewParameter(out * in * kernel)
	c.bias = layer.NewParameter(out)
	scale := math.Sqrt(2 / float64(in*kernel))
	for i := range c.weight.Data {
		c.weight.Data[i] = float32(rand.NormFloat64() * scale)
	}
	return
}

// MustNew creates a new Conv1D layer with in/out channels, kernel size and dilation
func MustNew(in, out, kernel, dilation int) *Conv1D {
	c, err := New(in, out, kernel, dilation)
	if err != nil {
		panic(err.Error())
	}
	return c
}

// In reports the input channel count
func (c *Conv1D) In() int {
	return c.in
}

// Out reports the output channel count
func (c *Conv1D) Out() int {
	return c.out
}

// Kernel reports the kernel size
func (c *Conv1D) Kernel() int {
	return c.kernel
}

// Dilation reports the dilation factor
func (c *Conv1D) Dilation() int {
	return c.dilation
}

// Context reports how many past samples one output sample sees beyond itself
func (c *Conv1D) Context() int {
	return (c.kernel - 1) * c.dilation
}

// Forward computes the causal convolution of in, caching the padded input
func (c *Conv1D) Forward(in [][]float32) [][]float32 {
	var length = len(in[0])
	var pad = c.Context()
	c.padded = layer.Signal(c.in, pad+length)
	for ci := range in {
		copy(c.padded[ci][pad:], in[ci])
	}
	c.length = length
	out := layer.Signal(c.out, length)
	for co := 0; co < c.out; co++ {
		row := out[co]
		b := c.bias.Data[co]
		for t := range row {
			row[t] = b
		}
		for ci := 0; ci < c.in; ci++ {
			xp := c.padded[ci]
			for j := 0; j < c.kernel; j++ {
				// tap j reads the input shifted j*dilation samples left,
				// which is a contiguous window of the padded signal
				off := j * c.dilation
				simd.Axpy(row, xp[off:off+length], c.weight.Data[(co*c.in+ci)*c.kernel+j])
			}
		}
	}
	return out
}

// Backward accumulates weight and bias gradients and returns the input gradient
func (c *Conv1D) Backward(grad [][]float32) [][]float32 {
	if c.padded == nil {
		panic("conv1d: Backward before Forward")
	}
	var length = c.length
	var pad = c.Context()
	dpadded := layer.Signal(c.in, pad+length)
	for co := 0; co < c.out; co++ {
		gc := grad[co]
		c.bias.Grad[co] += simd.Sum(gc)
		for ci := 0; ci < c.in; ci++ {
			xp := c.padded[ci]
			for j := 0; j < c.kernel; j++ {
				idx := (co*c.in+ci)*c.kernel + j
				off := j * c.dilation
				c.weight.Grad[idx] += simd.Dot(gc, xp[off:off+length])
				simd.Axpy(dpadded[ci][off:off+length], gc, c.weight.Data[idx])
			}
		}
	}
	din := make([][]float32, c.in)
	for ci := range din {
		din[ci] = dpadded[ci][pad:]
	}
	return din
}

// Parameters lists the weight and bias parameters
func (c *Conv1D) Parameters() []*layer.Parameter {
	return []*layer.Parameter{c.weight, c.bias}
}

// Weight exposes the flat [out][in][kernel] weight parameter
func (c *Conv1D) Weight() *layer.Parameter {
	return c.weight
}

// Bias exposes the bias parameter
func (c *Conv1D) Bias() *layer.Parameter {
	return c.bias
}
