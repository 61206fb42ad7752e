package trainer

import "math"
import "runtime"

import "go.uber.org/zap"

import "github.com/tonecap/tonecap/datasets"
import "github.com/tonecap/tonecap/inference"
import "github.com/tonecap/tonecap/loss"
import "github.com/tonecap/tonecap/net/tcn"

// Metrics is the validation score of one epoch
type Metrics struct {
	ESR      float64
	Spectral float64
}

// validation rendering block size
const evaluateBlock = 32768

// NewEvaluateFunc builds the per-epoch validation pass. It renders the
// validation clip through the current weights, scores it, and writes the
// best checkpoint so far to dstmodel.
func NewEvaluateFunc(net *tcn.Network, valid *datasets.Pair, dstmodel *string, log *zap.SugaredLogger) func() Metrics {
	var best = math.Inf(1)
	return func() Metrics {
		var m Metrics
		if valid.Len() > 0 {
			workers := runtime.NumCPU()
			if workers > 4 {
				workers = 4
			}
			var models []inference.Model
			for i := 0; i < workers; i++ {
				models = append(models, net.Clone())
			}
			out := inference.RenderParallel(models, valid.Clean, evaluateBlock)
			m.ESR = loss.ESR(out, valid.Target)
			m.Spectral = loss.SpectralDistance(out, valid.Target)
		}
		// without a validation tail every epoch is the best so far
		if dstmodel != nil && len(*dstmodel) > 0 && (valid.Len() == 0 || m.ESR < best) {
			best = m.ESR
			err := net.WriteZlibWeightsToFile(*dstmodel)
			if err != nil {
				log.Errorw("checkpoint write failed", "file", *dstmodel, "error", err)
			}
		}
		return m
	}
}
