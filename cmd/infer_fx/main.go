package main

import "flag"
import "runtime"
import "time"

import "go.uber.org/zap"

import "github.com/tonecap/tonecap/inference"
import "github.com/tonecap/tonecap/net/tcn"
import "github.com/tonecap/tonecap/wavio"

func main() {

	model := flag.String("model", "", "trained model .json.zlib file")
	in := flag.String("in", "", "input .wav file")
	out := flag.String("out", "", "output .wav file")
	block := flag.Int("block", 32768, "render block size in samples")
	jobs := flag.Int("jobs", runtime.NumCPU(), "concurrent render workers")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	log := logger.Sugar()

	if *model == "" || *in == "" || *out == "" {
		flag.Usage()
		log.Fatal("-model, -in and -out are required")
	}

	net, err := tcn.LoadZlibWeightsFromFile(*model)
	if err != nil {
		log.Fatalw("model load failed", "file", *model, "error", err)
	}
	samples, rate, err := wavio.Load(*in)
	if err != nil {
		log.Fatalw("input load failed", "file", *in, "error", err)
	}
	log.Infow("rendering",
		"samples", len(samples),
		"rate", rate,
		"receptive_field", net.ReceptiveField(),
		"jobs", *jobs,
	)

	models := []inference.Model{net}
	for i := 1; i < *jobs; i++ {
		models = append(models, net.Clone())
	}
	start := time.Now()
	rendered := inference.RenderParallel(models, samples, *block)
	elapsed := time.Since(start)

	err = wavio.Save(*out, rendered, rate)
	if err != nil {
		log.Fatalw("output save failed", "file", *out, "error", err)
	}
	log.Infow("done",
		"file", *out,
		"elapsed", elapsed,
		"realtime_factor", float64(len(samples))/float64(rate)/elapsed.Seconds(),
	)
}
