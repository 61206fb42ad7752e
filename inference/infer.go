// Package inference applies a captured effect model to audio clips
package inference

import "github.com/tonecap/tonecap/parallel"

// Model is anything that can map a mono clip through the captured effect
type Model interface {

	// Process maps a mono clip through the effect
	Process(in []float32) []float32

	// ReceptiveField reports how many input samples one output sample sees
	ReceptiveField() int
}

// Render applies the model to a clip of any length in blocks of the given
// size. Every block is fed with receptive-field-1 samples of left context,
// so the result is identical to processing the whole clip at once.
func Render(m Model, in []float32, block int) []float32 {
	return render([]Model{m}, in, block)
}

// RenderParallel renders blocks concurrently, one worker per model. The
// models must share weights; use Clone on the network to build them.
func RenderParallel(models []Model, in []float32, block int) []float32 {
	return render(models, in, block)
}

func render(models []Model, in []float32, block int) []float32 {
	if len(in) == 0 || len(models) == 0 {
		return nil
	}
	if block < 1 || block > len(in) {
		block = len(in)
	}
	context := models[0].ReceptiveField() - 1
	blocks := (len(in) + block - 1) / block
	out := make([]float32, len(in))

	// workers stride over the blocks so each model stays on one goroutine
	parallel.ForEach(len(models), len(models), func(w int) {
		m := models[w]
		for i := w; i < blocks; i += len(models) {
			start := i * block
			end := start + block
			if end > len(in) {
				end = len(in)
			}
			from := start - context
			if from < 0 {
				from = 0
			}
			y := m.Process(in[from:end])
			copy(out[start:end], y[start-from:])
		}
	})
	return out
}
