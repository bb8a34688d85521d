package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/richard-senior/smoothcurve/internal/config"
	"github.com/richard-senior/smoothcurve/internal/logger"
	"github.com/richard-senior/smoothcurve/internal/processor"
	"github.com/richard-senior/smoothcurve/pkg/util"
)

func main() {
	configFile := flag.String("config", "", "YAML configuration file")
	inputFile := flag.String("input", "", "Input file path (if not provided, x,y arguments or stdin will be used)")
	outputFile := flag.String("output", "", "Output file path, compressed when it ends in .br (if not provided, stdout will be used)")
	smoothing := flag.Float64("smoothing", config.DefaultSmoothing, "Curve smoothing between 0 and 1, overrides the input and config")
	asSVG := flag.Bool("svg", false, "Write a complete SVG document rather than path data")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	// the result goes to stdout, keep the log out of it
	cfg.Log.Output = "f"
	if *debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.ApplyLogging(); err != nil {
		logger.Fatal("Failed to configure logging", err)
	}

	logger.Info("Starting smoothpath")

	opts := processor.Options{SVG: *asSVG}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "smoothing" {
			opts.Smoothing = smoothing
		}
	})

	var result []byte
	switch {
	case *inputFile != "":
		input, err := util.ReadFile(*inputFile)
		if err != nil {
			logger.Fatal("Failed to read input file", err)
		}
		result, err = processor.ProcessRequest(input, cfg, opts)
		if err != nil {
			fail(err)
		}
	case flag.NArg() > 0:
		req, err := processor.RequestFromArgs(flag.Args())
		if err != nil {
			fail(err)
		}
		result, err = processor.Render(req, cfg, opts)
		if err != nil {
			fail(err)
		}
	default:
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			logger.Fatal("Failed to read from stdin", err)
		}
		result, err = processor.ProcessRequest(input, cfg, opts)
		if err != nil {
			fail(err)
		}
	}

	if *outputFile != "" {
		if err := util.WriteFile(*outputFile, result); err != nil {
			logger.Fatal("Failed to write to output file", err)
		}
	} else {
		fmt.Print(string(result))
	}

	logger.Info("smoothpath completed successfully")
}

func fail(err error) {
	logger.Error("Failed to process request", err)
	fmt.Fprintln(os.Stderr, "smoothpath:", err)
	os.Exit(1)
}
