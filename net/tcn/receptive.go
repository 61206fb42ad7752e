package tcn

// ReceptiveField computes how many input samples one output sample sees for
// a stack of blocks dilated causal convolutions with the given kernel size
// and dilation growth: 1 + (kernel-1) * (1 + growth + growth^2 + ...)
func ReceptiveField(blocks, kernel, growth int) int {
	var field = 1
	var dilation = 1
	for i := 0; i < blocks; i++ {
		field += (kernel - 1) * dilation
		dilation *= growth
	}
	return field
}

// ReceptiveField reports how many input samples one output sample sees
func (n *Network) ReceptiveField() int {
	return ReceptiveField(len(n.blocks), n.kernel, n.growth)
}
