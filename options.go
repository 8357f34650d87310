package edgeview

import (
	"log/slog"

	"github.com/gogpu/edgeview/internal/color"
	"github.com/gogpu/edgeview/internal/filter"
)

// Option configures a Pipeline during creation.
// Use functional options to customize Pipeline behavior.
//
// Example:
//
//	// Default: direct Sobel convolution, legacy weights, single goroutine
//	p := edgeview.NewPipeline()
//
//	// Fast preview on all cores
//	p := edgeview.NewPipeline(edgeview.WithConvolution(false), edgeview.WithWorkers(0))
type Option func(*options)

// options holds optional configuration for Pipeline creation.
type options struct {
	logger  *slog.Logger
	mode    filter.Mode
	weights color.LumaWeights
	workers int
	decoder Decoder
}

// defaultOptions returns the default pipeline options.
func defaultOptions() options {
	return options{
		logger:  nil, // Falls back to the package logger at call time
		mode:    filter.DirectConvolution,
		weights: color.LegacyWeights,
		workers: 1,
		decoder: FileDecoder{},
	}
}

// WithLogger sets a logger for this pipeline only. Without it the pipeline
// logs through the package logger configured by SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithConvolution selects the gradient algorithm: true for direct Sobel
// convolution (the default), false for the cheaper finite differences.
func WithConvolution(useConvolution bool) Option {
	return func(o *options) {
		o.mode = filter.ModeFor(useConvolution)
	}
}

// WithMode sets the convolution mode directly.
func WithMode(m Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithLumaWeights sets the grayscale channel weighting. A zero weighting,
// or one with a NaN or infinite coefficient, is ignored.
//
// Example:
//
//	p := edgeview.NewPipeline(edgeview.WithLumaWeights(edgeview.Rec709Weights))
func WithLumaWeights(w LumaWeights) Option {
	return func(o *options) {
		if !w.IsZero() && w.IsFinite() {
			o.weights = w
		}
	}
}

// WithWorkers sets how many goroutines direct convolution splits rows over.
// 1 (the default) runs on the calling goroutine; 0 or negative uses
// GOMAXPROCS. Pipelines with more than one worker must be closed.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithDecoder replaces the decoder used by Pipeline.Load. A nil decoder is
// ignored.
func WithDecoder(d Decoder) Option {
	return func(o *options) {
		if d != nil {
			o.decoder = d
		}
	}
}
