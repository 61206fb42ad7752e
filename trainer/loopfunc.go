package trainer

import "fmt"
import "io"
import "math"

import "github.com/vbauerster/mpb/v8"
import "github.com/vbauerster/mpb/v8/decor"
import "go.uber.org/zap"

import "github.com/tonecap/tonecap/datasets"
import "github.com/tonecap/tonecap/learning"
import "github.com/tonecap/tonecap/loss"
import "github.com/tonecap/tonecap/net/tcn"

// learn rates below this are not worth another halving
const minLearnRate = 1e-7

// NewLoopFunc builds the training loop: every epoch re-walks the example
// pair's windows in a fresh order, steps the optimizer per window, then
// evaluates. The learn rate is halved after hyper.Patience epochs without
// validation improvement. record may be nil.
func NewLoopFunc(net *tcn.Network, hyper *learning.HyperParameters, pair *datasets.Pair, window int,
	evaluate func() Metrics, record func(epoch int, trainLoss float64, m Metrics, learnRate float64),
	log *zap.SugaredLogger) func() {

	hyper.Default()
	return func() {
		opt := learning.NewAdam(net.Parameters(), hyper)
		segs := pair.Windows(window, net.ReceptiveField()-1)
		if len(segs) == 0 {
			log.Error("nothing to train on")
			return
		}
		var best = math.Inf(1)
		var sinceBest int
		for epoch := 1; epoch <= hyper.Epochs; epoch++ {
			datasets.Shuffle(segs)
			var opts []mpb.ContainerOption
			opts = append(opts, mpb.WithWidth(64))
			if hyper.DisableProgressBar {
				opts = append(opts, mpb.WithOutput(io.Discard))
			}
			p := mpb.New(opts...)
			bar := p.AddBar(int64(len(segs)),
				mpb.PrependDecorators(
					decor.Name(fmt.Sprintf("epoch %d: ", epoch)),
					decor.CountersNoUnit("%d / %d"),
				),
				mpb.AppendDecorators(
					decor.Percentage(),
				),
			)

			var total float64
			for _, seg := range segs {
				out := net.Forward([][]float32{seg.Input})
				grad := make([]float32, len(seg.Input))
				total += loss.Grad(out[0][seg.Skip:], seg.Target[seg.Skip:], grad[seg.Skip:])
				net.Backward([][]float32{grad})
				opt.Step()
				bar.Increment()
			}
			p.Wait()
			total /= float64(len(segs))

			m := evaluate()
			log.Infow("epoch",
				"epoch", epoch,
				"train_loss", total,
				"valid_esr", m.ESR,
				"spectral", m.Spectral,
				"learn_rate", hyper.LearnRate,
			)
			if record != nil {
				record(epoch, total, m, hyper.LearnRate)
			}

			if m.ESR < best {
				best = m.ESR
				sinceBest = 0
				continue
			}
			sinceBest++
			if sinceBest >= hyper.Patience {
				sinceBest = 0
				hyper.LearnRate /= 2
				log.Infow("validation plateau, halving learn rate", "learn_rate", hyper.LearnRate)
				if hyper.LearnRate < minLearnRate {
					log.Info("learn rate exhausted, stopping early")
					return
				}
			}
		}
	}
}
