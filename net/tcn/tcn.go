// Package tcn implements the dilated temporal convolutional network type
package tcn

import "errors"

import "github.com/tonecap/tonecap/layer"
import "github.com/tonecap/tonecap/layer/conv1d"

// Network maps a mono signal through a stack of residual dilated blocks and
// a pointwise mixer back down to one channel. Dilations grow by a fixed
// factor per block, so depth buys receptive field exponentially.
type Network struct {
	blocks []*Block
	mixer  *conv1d.Conv1D

	channels, kernel, growth int
}

// New creates a network of blocks residual units with the given channel
// count, kernel size and per-block dilation growth
func New(channels, blocks, kernel, growth int) (n *Network, err error) {
	if channels < 1 || blocks < 1 || kernel < 1 {
		return nil, errors.New("tcn: channels, blocks and kernel must be positive")
	}
	if growth < 1 {
		return nil, errors.New("tcn: dilation growth must be at least 1")
	}
	n = new(Network)
	n.channels = channels
	n.kernel = kernel
	n.growth = growth
	var dilation = 1
	var in = 1
	for i := 0; i < blocks; i++ {
		n.blocks = append(n.blocks, newBlock(in, channels, kernel, dilation))
		in = channels
		dilation *= growth
	}
	n.mixer = conv1d.MustNew(channels, 1, 1, 1)
	return
}

// MustNew creates a network of blocks residual units with the given channel
// count, kernel size and per-block dilation growth
func MustNew(channels, blocks, kernel, growth int) *Network {
	n, err := New(channels, blocks, kernel, growth)
	if err != nil {
		panic(err.Error())
	}
	return n
}

// Channels reports the hidden channel count
func (n *Network) Channels() int {
	return n.channels
}

// Blocks reports the number of residual units
func (n *Network) Blocks() int {
	return len(n.blocks)
}

// Kernel reports the kernel size
func (n *Network) Kernel() int {
	return n.kernel
}

// Growth reports the per-block dilation growth factor
func (n *Network) Growth() int {
	return n.growth
}

// Forward runs the network over a [1][time] signal
func (n *Network) Forward(in [][]float32) [][]float32 {
	out := in
	for _, b := range n.blocks {
		out = b.Forward(out)
	}
	return n.mixer.Forward(out)
}

// Backward routes the output gradient back to the input
func (n *Network) Backward(grad [][]float32) [][]float32 {
	grad = n.mixer.Backward(grad)
	for i := len(n.blocks) - 1; i >= 0; i-- {
		grad = n.blocks[i].Backward(grad)
	}
	return grad
}

// Parameters lists every trainable parameter of the network
func (n *Network) Parameters() (o []*layer.Parameter) {
	for _, b := range n.blocks {
		o = append(o, b.Parameters()...)
	}
	o = append(o, n.mixer.Parameters()...)
	return
}

// ZeroGrad clears every accumulated gradient
func (n *Network) ZeroGrad() {
	for _, p := range n.Parameters() {
		p.ZeroGrad()
	}
}

// Clone makes an independent copy of the network with the same weights.
// Forward caches layer state, so concurrent rendering needs one clone per
// worker.
func (n *Network) Clone() *Network {
	o := MustNew(n.channels, len(n.blocks), n.kernel, n.growth)
	dst := o.Parameters()
	for i, p := range n.Parameters() {
		copy(dst[i].Data, p.Data)
	}
	return o
}

// Process runs the network over a mono clip
func (n *Network) Process(in []float32) []float32 {
	if len(in) == 0 {
		return nil
	}
	return n.Forward([][]float32{in})[0]
}
