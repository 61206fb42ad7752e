package main

import "flag"
import "os"

import "go.uber.org/zap"

import "github.com/tonecap/tonecap/export"
import "github.com/tonecap/tonecap/net/tcn"

func main() {

	model := flag.String("model", "", "trained model .json.zlib file")
	format := flag.String("format", "bin", "export format: go or bin")
	out := flag.String("out", "", "export destination file")
	name := flag.String("name", "Capture", "exported model name (go format)")
	pkg := flag.String("pkg", "model", "exported package name (go format)")
	rate := flag.Int("rate", 44100, "sample rate the model was trained at")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()
	log := logger.Sugar()

	if *model == "" || *out == "" {
		flag.Usage()
		log.Fatal("-model and -out are required")
	}

	net, err := tcn.LoadZlibWeightsFromFile(*model)
	if err != nil {
		log.Fatalw("model load failed", "file", *model, "error", err)
	}

	switch *format {
	case "go":
		buf, err := export.GoSource(net, *pkg, *name, *rate)
		if err != nil {
			log.Fatalw("export failed", "error", err)
		}
		err = os.WriteFile(*out, buf.Bytes(), 0644)
		if err != nil {
			log.Fatalw("export write failed", "file", *out, "error", err)
		}
	case "bin":
		err = export.WriteBinaryToFile(*out, net, *rate)
		if err != nil {
			log.Fatalw("export failed", "file", *out, "error", err)
		}
	default:
		log.Fatalw("unknown export format", "format", *format)
	}
	log.Infow("exported",
		"file", *out,
		"format", *format,
		"receptive_field", net.ReceptiveField(),
	)
}
