package layer

// Parameter is one trainable tensor with its accumulated gradient
type Parameter struct {
	Data []float32
	Grad []float32
}

// NewParameter allocates a parameter of n values with a zero gradient
func NewParameter(n int) *Parameter {
	return &Parameter{
		Data: make([]float32, n),
		Grad: make([]float32, n),
	}
}

// ZeroGrad clears the accumulated gradient
func (p *Parameter) ZeroGrad() {
	for i := range p.Grad {
		p.Grad[i] = 0
	}
}

// Signal allocates a [channel][time] buffer
func Signal(channels, length int) [][]float32 {
	o := make([][]float32, channels)
	for c := range o {
		o[c] = make([]float32, length)
	}
	return o
}
