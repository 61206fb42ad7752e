package tcn

import "github.com/tonecap/tonecap/layer"
import "github.com/tonecap/tonecap/layer/conv1d"
import "github.com/tonecap/tonecap/layer/prelu"

// Block is one residual unit: a dilated causal convolution and a parametric
// rectifier, summed with a skip path. The skip path is a pointwise
// projection when the channel counts differ and identity otherwise.
type Block struct {
	conv *conv1d.Conv1D
	act  *prelu.PReLU
	res  *conv1d.Conv1D
}

func newBlock(in, out, kernel, dilation int) *Block {
	b := new(Block)
	b.conv = conv1d.MustNew(in, out, kernel, dilation)
	b.act = prelu.MustNew(out)
	if in != out {
		b.res = conv1d.MustNew(in, out, 1, 1)
	}
	return b
}

// Forward computes activation(conv(in)) + skip(in)
func (b *Block) Forward(in [][]float32) [][]float32 {
	out := b.act.Forward(b.conv.Forward(in))
	var skip [][]float32
	if b.res != nil {
		skip = b.res.Forward(in)
	} else {
		skip = in
	}
	for c := range out {
		for t := range out[c] {
			out[c][t] += skip[c][t]
		}
	}
	return out
}

// Backward routes the gradient through both the convolution and the skip path
func (b *Block) Backward(grad [][]float32) [][]float32 {
	din := b.conv.Backward(b.act.Backward(grad))
	if b.res != nil {
		dskip := b.res.Backward(grad)
		for c := range din {
			for t := range din[c] {
				din[c][t] += dskip[c][t]
			}
		}
	} else {
		for c := range din {
			for t := range din[c] {
				din[c][t] += grad[c][t]
			}
		}
	}
	return din
}

// Parameters lists the parameters of the convolution, rectifier and skip path
func (b *Block) Parameters() (o []*layer.Parameter) {
	o = append(o, b.conv.Parameters()...)
	o = append(o, b.act.Parameters()...)
	if b.res != nil {
		o = append(o, b.res.Parameters()...)
	}
	return
}

// Dilation reports the dilation of the block convolution
func (b *Block) Dilation() int {
	return b.conv.Dilation()
}
