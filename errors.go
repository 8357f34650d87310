package edgeview

import (
	"github.com/gogpu/edgeview/internal/color"
	"github.com/gogpu/edgeview/internal/filter"
	"github.com/gogpu/edgeview/internal/image"
)

// Pipeline errors. All of them are terminal for the image being processed;
// none of the inputs are transient, so nothing is retried.
var (
	// ErrInvalidBufferSize is returned when a pixel buffer's length does not
	// equal width*height*3, or a dimension is non-positive.
	ErrInvalidBufferSize = image.ErrInvalidBufferSize

	// ErrEmptyGrid is returned when a zero-sized grid reaches a conversion.
	ErrEmptyGrid = image.ErrEmptyGrid

	// ErrDecodeFailure is returned when the decoder cannot produce pixel data.
	// Callers typically report it and show a placeholder.
	ErrDecodeFailure = image.ErrDecodeFailure

	// ErrInvalidKernel is returned for malformed convolution kernels.
	ErrInvalidKernel = filter.ErrInvalidKernel

	// ErrNoAxis is returned when finite differences are requested with a
	// kernel that has no gradient axis.
	ErrNoAxis = filter.ErrNoAxis

	// ErrInvalidWeights is returned when a grayscale weight is NaN or
	// infinite.
	ErrInvalidWeights = color.ErrInvalidWeights
)
