package edgeview

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/edgeview/internal/color"
	"github.com/gogpu/edgeview/internal/filter"
	"github.com/gogpu/edgeview/internal/image"
	"github.com/gogpu/edgeview/internal/parallel"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
)

// LumaWeights is the per-channel weighting used for grayscale conversion.
type LumaWeights = color.LumaWeights

// Grayscale weightings.
var (
	// LegacyWeights (0.2126, 0.7512, 0.0722) is the default. The weights
	// sum to 1.036; it is kept so edge maps match earlier output.
	LegacyWeights = color.LegacyWeights

	// Rec709Weights is the standard BT.709 luma weighting.
	Rec709Weights = color.Rec709Weights
)

// Mode selects how gradients are computed.
type Mode = filter.Mode

// Gradient modes.
const (
	DirectConvolution = filter.DirectConvolution
	FiniteDifference  = filter.FiniteDifference
)

// Stats describes a single pipeline run.
type Stats struct {
	// RunID identifies the run in log output.
	RunID string

	// Mode is the gradient algorithm that was used.
	Mode Mode

	// EdgeMapElapsed is the wall-clock time spent computing the edge map.
	EdgeMapElapsed time.Duration

	// MinMagnitude and MaxMagnitude bound the gradient magnitudes that were
	// stretched into [0, 255].
	MinMagnitude float64
	MaxMagnitude float64
}

// PipelineResult pairs the original pixels with their edge visualization.
// Both buffers have the same dimensions and are not modified after being
// returned; the caller owns them.
type PipelineResult struct {
	// Raw is the original image.
	Raw *RawBuffer

	// Processed is the gradient magnitude rescaled to [0, 255] and
	// replicated into R, G and B.
	Processed *RawBuffer

	// Edges is the gradient magnitude grid Processed was normalized from,
	// shaped (Height, Width).
	Edges *mat.Dense

	Width  int
	Height int

	Stats Stats
}

// Pipeline turns raw RGB buffers into display pairs.
//
// A Pipeline is immutable after NewPipeline and safe for concurrent use;
// each run allocates its own grids and buffers.
type Pipeline struct {
	opts options
	pool *parallel.RowPool
	conv *filter.Convolver
}

// defaultPipeline backs the package-level BuildDisplayPair and Load.
// It runs on the calling goroutine and never needs closing.
var defaultPipeline = NewPipeline()

// NewPipeline creates a pipeline with the given options.
//
// Example:
//
//	p := edgeview.NewPipeline(edgeview.WithWorkers(0))
//	defer p.Close()
//
//	res, err := p.Load("ferret.jpg")
//	if errors.Is(err, edgeview.ErrDecodeFailure) {
//	    // show a placeholder
//	}
func NewPipeline(opts ...Option) *Pipeline {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p := &Pipeline{opts: o}
	if o.workers != 1 {
		p.pool = parallel.NewRowPool(o.workers)
	}
	p.conv = filter.NewConvolver(p.pool)
	return p
}

// Close releases the worker goroutines of a multi-worker pipeline.
// Close is safe to call multiple times; runs after Close use one goroutine.
func (p *Pipeline) Close() {
	p.pool.Close()
}

// Workers returns the number of goroutines direct convolution uses.
func (p *Pipeline) Workers() int {
	return p.pool.Workers()
}

// Mode returns the configured gradient mode.
func (p *Pipeline) Mode() Mode {
	return p.opts.mode
}

func (p *Pipeline) logger() *slog.Logger {
	if p.opts.logger != nil {
		return p.opts.logger
	}
	return Logger()
}

// BuildDisplayPair runs the default pipeline on raw.
func BuildDisplayPair(raw []byte, width, height int) (*PipelineResult, error) {
	return defaultPipeline.BuildDisplayPair(raw, width, height)
}

// Load decodes path with the default pipeline and builds its display pair.
func Load(path string) (*PipelineResult, error) {
	return defaultPipeline.Load(path)
}

// BuildDisplayPair validates raw against width and height, converts it to
// intensity, computes the gradient magnitude and normalizes it into a
// displayable buffer.
//
// raw is copied; the caller may reuse it afterwards.
// Returns ErrInvalidBufferSize when len(raw) != width*height*3.
func (p *Pipeline) BuildDisplayPair(raw []byte, width, height int) (*PipelineResult, error) {
	buf, err := image.CopyFromRaw(raw, width, height)
	if err != nil {
		return nil, fmt.Errorf("edgeview: %w", err)
	}
	return p.build(buf)
}

// Process builds the display pair for an already validated buffer.
// The result's Raw field is buf itself.
func (p *Pipeline) Process(buf *RawBuffer) (*PipelineResult, error) {
	if buf == nil {
		return nil, fmt.Errorf("edgeview: nil buffer: %w", ErrInvalidBufferSize)
	}
	return p.build(buf)
}

// Load decodes the image at path with the configured Decoder and builds its
// display pair. Decoder errors are returned wrapped with ErrDecodeFailure
// and are not retried.
func (p *Pipeline) Load(path string) (*PipelineResult, error) {
	buf, err := p.opts.decoder.Decode(path)
	if err != nil {
		if !errors.Is(err, ErrDecodeFailure) {
			err = fmt.Errorf("%w: %w", ErrDecodeFailure, err)
		}
		return nil, fmt.Errorf("edgeview: load %s: %w", path, err)
	}
	if buf == nil {
		return nil, fmt.Errorf("edgeview: load %s: %w: decoder returned no pixels", path, ErrDecodeFailure)
	}

	p.logger().Info("image loaded", "path", path, "width", buf.Width(), "height", buf.Height())

	return p.build(buf)
}

// build runs the conversion steps in order.
func (p *Pipeline) build(buf *RawBuffer) (*PipelineResult, error) {
	width, height := buf.Bounds()
	runID := uuid.NewString()
	log := p.logger().With("run_id", runID)

	grid, err := image.ToIntensityGrid(buf.Pix(), width, height, p.opts.weights)
	if err != nil {
		return nil, fmt.Errorf("edgeview: grayscale: %w", err)
	}

	start := time.Now()
	edges, err := p.conv.EdgeMap(grid, p.opts.mode)
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("edgeview: edge map: %w", err)
	}

	lo, hi, _ := image.IntensityRange(edges)
	lutStats := color.LUTCacheStats()
	log.Debug("edge map computed",
		"elapsed", elapsed,
		"mode", p.opts.mode,
		"workers", p.Workers(),
		"width", width,
		"height", height,
		"min", lo,
		"max", hi,
		"lut_cached", lutStats.Len,
		"lut_hit_rate", lutStats.HitRate())
	if lo == hi {
		log.Warn("edge map is flat, processed image will be black", "value", lo)
	}

	processed, err := image.ToPixelBuffer(edges)
	if err != nil {
		return nil, fmt.Errorf("edgeview: normalize: %w", err)
	}

	return &PipelineResult{
		Raw:       buf,
		Processed: processed,
		Edges:     edges,
		Width:     width,
		Height:    height,
		Stats: Stats{
			RunID:          runID,
			Mode:           p.opts.mode,
			EdgeMapElapsed: elapsed,
			MinMagnitude:   lo,
			MaxMagnitude:   hi,
		},
	}, nil
}
