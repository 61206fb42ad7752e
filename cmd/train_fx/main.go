package main

import "flag"
import "math/rand"
import "os"

import "go.uber.org/zap"

import "github.com/tonecap/tonecap/config"
import "github.com/tonecap/tonecap/datasets"
import "github.com/tonecap/tonecap/history"
import "github.com/tonecap/tonecap/learning"
import "github.com/tonecap/tonecap/net/tcn"
import "github.com/tonecap/tonecap/trainer"

func main() {

	clean := flag.String("clean", "", "clean input .wav file")
	fx := flag.String("fx", "", "processed target .wav file")
	dstmodel := flag.String("dstmodel", "", "model destination .json.zlib file")
	cfgfile := flag.String("config", "", "training config .yaml file")
	histdb := flag.String("history", "", "training history .db file")
	resume := flag.Bool("resume", false, "resume training")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	log := logger.Sugar()

	if *clean == "" || *fx == "" {
		flag.Usage()
		log.Fatal("both -clean and -fx are required")
	}

	cfg := config.Default()
	if *cfgfile != "" {
		var err error
		cfg, err = config.Load(*cfgfile)
		if err != nil {
			log.Fatalw("config load failed", "file", *cfgfile, "error", err)
		}
	}
	if cfg.Train.Seed != 0 {
		rand.Seed(cfg.Train.Seed)
	}

	pair, err := datasets.LoadPair(*clean, *fx)
	if err != nil {
		log.Fatalw("example pair load failed", "error", err)
	}
	log.Infow("example pair loaded",
		"seconds", pair.Seconds(),
		"rate", pair.Rate,
	)

	net := tcn.MustNew(cfg.Model.Channels, cfg.Model.Blocks, cfg.Model.Kernel, cfg.Model.Growth)
	log.Infow("network built",
		"channels", cfg.Model.Channels,
		"blocks", cfg.Model.Blocks,
		"kernel", cfg.Model.Kernel,
		"growth", cfg.Model.Growth,
		"receptive_field", net.ReceptiveField(),
	)
	if net.ReceptiveField() > pair.Len() {
		log.Warnw("receptive field exceeds the clip, shrink the model or record more",
			"receptive_field", net.ReceptiveField(),
			"samples", pair.Len(),
		)
	}

	train, valid := pair.Split(cfg.Train.Validate)

	var record func(epoch int, trainLoss float64, m trainer.Metrics, learnRate float64)
	if *histdb != "" {
		store, err := history.Open(*histdb)
		if err != nil {
			log.Fatalw("history open failed", "file", *histdb, "error", err)
		}
		defer store.Close()
		run, err := store.CreateRun(cfg)
		if err != nil {
			log.Fatalw("history run failed", "error", err)
		}
		log.Infow("recording history", "file", *histdb, "run", run)
		record = func(epoch int, trainLoss float64, m trainer.Metrics, learnRate float64) {
			err := store.RecordEpoch(run, history.Epoch{
				Epoch:     epoch,
				TrainLoss: trainLoss,
				ValidESR:  m.ESR,
				Spectral:  m.Spectral,
				LearnRate: learnRate,
			})
			if err != nil {
				log.Errorw("history record failed", "epoch", epoch, "error", err)
			}
		}
	}

	hyper := &learning.HyperParameters{
		LearnRate: cfg.Train.LearnRate,
		ClipNorm:  cfg.Train.ClipNorm,
		Epochs:    cfg.Train.Epochs,
		Patience:  cfg.Train.Patience,
	}

	trainer.Resume(net, resume, dstmodel)
	evaluate := trainer.NewEvaluateFunc(net, valid, dstmodel, log)
	trainer.NewLoopFunc(net, hyper, train, cfg.Train.Window, evaluate, record, log)()

	if *dstmodel == "" {
		log.Warn("no -dstmodel given, trained weights were not saved")
		os.Exit(1)
	}
	log.Infow("training finished", "model", *dstmodel)
}
