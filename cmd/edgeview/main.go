// Command edgeview computes the Sobel edge map of an image and writes it
// as a grayscale PNG.
//
// Usage:
//
//	edgeview -in photo.jpg -out edges.png [-raw raw.png] [-hist hist.png]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/edgeview"
	"github.com/gogpu/edgeview/internal/report"
)

type config struct {
	in      string
	out     string
	raw     string
	hist    string
	bins    int
	fast    bool
	weights string
	workers int
	verbose bool
}

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if err := run(cfg, os.Stdout, os.Stderr); err != nil {
		log.Fatalf("edgeview: %v", err)
	}
}

func parseFlags(args []string, output io.Writer) (config, error) {
	var cfg config

	fs := flag.NewFlagSet("edgeview", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.in, "in", "", "input image (PNG, JPEG, GIF, BMP, TIFF, WebP)")
	fs.StringVar(&cfg.out, "out", "edges.png", "output file for the edge map")
	fs.StringVar(&cfg.raw, "raw", "", "optional output file for the decoded RGB image")
	fs.StringVar(&cfg.hist, "hist", "", "optional output file for a gradient magnitude histogram (- for stdout)")
	fs.IntVar(&cfg.bins, "bins", report.DefaultBins, "histogram bins")
	fs.BoolVar(&cfg.fast, "fast", false, "use finite differences instead of Sobel convolution")
	fs.StringVar(&cfg.weights, "weights", "legacy", "grayscale weights: legacy or rec709")
	fs.IntVar(&cfg.workers, "workers", 1, "convolution goroutines (0 = GOMAXPROCS)")
	fs.BoolVar(&cfg.verbose, "v", false, "log timings to stderr")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.in == "" {
		fs.Usage()
		return cfg, errors.New("missing -in")
	}
	return cfg, nil
}

func lumaWeights(name string) (edgeview.LumaWeights, error) {
	switch name {
	case "legacy", "":
		return edgeview.LegacyWeights, nil
	case "rec709":
		return edgeview.Rec709Weights, nil
	default:
		return edgeview.LumaWeights{}, fmt.Errorf("unknown weights %q", name)
	}
}

func run(cfg config, stdout, logOutput io.Writer) error {
	weights, err := lumaWeights(cfg.weights)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: level}))
	edgeview.SetLogger(logger)
	defer edgeview.SetLogger(nil)

	p := edgeview.NewPipeline(
		edgeview.WithConvolution(!cfg.fast),
		edgeview.WithLumaWeights(weights),
		edgeview.WithWorkers(cfg.workers),
	)
	defer p.Close()

	res, err := p.Load(cfg.in)
	if err != nil {
		return err
	}

	if err := res.Processed.SavePNG(cfg.out); err != nil {
		return fmt.Errorf("save edge map: %w", err)
	}
	logger.Info("edge map saved", "path", cfg.out, "run_id", res.Stats.RunID,
		"elapsed", res.Stats.EdgeMapElapsed)

	if cfg.raw != "" {
		if err := res.Raw.SavePNG(cfg.raw); err != nil {
			return fmt.Errorf("save raw image: %w", err)
		}
	}

	if cfg.hist != "" {
		if err := saveHistogram(cfg, res, stdout); err != nil {
			// Nothing finite to plot.
			if errors.Is(err, report.ErrNoData) {
				logger.Warn("histogram skipped", "reason", err)
				return nil
			}
			return fmt.Errorf("save histogram: %w", err)
		}
		logger.Info("histogram saved", "path", cfg.hist)
	}

	return nil
}

// saveHistogram writes the PNG histogram to stdout when the path is "-".
func saveHistogram(cfg config, res *edgeview.PipelineResult, stdout io.Writer) error {
	opts := report.Options{Bins: cfg.bins}
	if cfg.hist == "-" {
		return report.WriteHistogram(stdout, res.Edges, opts)
	}
	return report.SaveHistogram(cfg.hist, res.Edges, opts)
}
