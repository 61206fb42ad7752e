// Package layer defines the differentiable layer type used by the network
package layer

// Layer is a differentiable transform over [channel][time] signals
type Layer interface {

	// Forward computes the layer output, caching whatever Backward needs
	Forward(in [][]float32) [][]float32

	// Backward consumes the output gradient and returns the input gradient,
	// accumulating parameter gradients along the way
	Backward(grad [][]float32) [][]float32

	// Parameters lists the trainable parameters of the layer
	Parameters() []*Parameter
}
