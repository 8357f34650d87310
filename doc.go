// Package edgeview turns raster images into gradient-magnitude edge maps
// ready for display.
//
// # Overview
//
// A run takes an 8-bit RGB buffer (row-major, interleaved R, G, B), converts
// it to a float64 intensity grid, convolves the grid with horizontal and
// vertical Sobel kernels, combines the two gradients into
// sqrt(Gx² + Gy²) and stretches the result back into [0, 255]. The output
// is a PipelineResult holding the original and processed buffers, both of
// the same size, for a rendering backend to upload.
//
// # Quick Start
//
//	import "github.com/gogpu/edgeview"
//
//	res, err := edgeview.Load("ferret.jpg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = res.Processed.SavePNG("edges.png")
//
// # Gradient Modes
//
// DirectConvolution (the default) slides 3x3 Sobel kernels over the grid.
// Cells closer than the kernel size to any border are left at 0 rather than
// padded. FiniteDifference takes forward differences between neighboring
// columns and rows, which is cheaper and has a one-pixel zero border on the
// right and bottom. Both return grids of the input shape.
//
// # Grayscale Weights
//
// The default LegacyWeights (0.2126, 0.7512, 0.0722) keep compatibility with
// earlier edge maps even though they sum to 1.036. Use WithLumaWeights with
// Rec709Weights for standard luma.
//
// # Normalization
//
// The smallest gradient maps to 0 and the largest to 255. A flat edge map
// (for example a uniform image) has no range and is rendered all black.
//
// # Concurrency
//
// Pipelines are safe for concurrent use. WithWorkers splits direct
// convolution by output rows across a worker pool; call Close when done.
//
// # Errors
//
// ErrInvalidBufferSize, ErrEmptyGrid and ErrDecodeFailure are terminal for
// the image at hand. Match them with errors.Is.
package edgeview
