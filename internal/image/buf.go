// Package image provides the raw pixel buffers exchanged with the decoding
// and rendering collaborators, and the conversions between those buffers
// and floating-point intensity grids.
package image

import (
	"errors"
	"fmt"
)

// BytesPerPixel is the number of interleaved channels stored per pixel (R, G, B).
const BytesPerPixel = 3

// Common errors for buffer operations.
var (
	// ErrInvalidBufferSize is returned when a buffer length does not match
	// width*height*BytesPerPixel, or when width or height is non-positive.
	ErrInvalidBufferSize = errors.New("image: invalid buffer size")

	// ErrEmptyGrid is returned when a zero-sized intensity grid is converted.
	ErrEmptyGrid = errors.New("image: empty grid")
)

// RawBuffer is an 8-bit RGB pixel buffer stored row-major with channels
// interleaved (R, G, B per pixel) and no row padding.
//
// Width and height are fixed at creation. The pipeline never mutates a
// RawBuffer after handing it to a caller.
//
// Thread safety: RawBuffer is safe for concurrent read access.
type RawBuffer struct {
	pix    []byte
	width  int
	height int
}

// ExpectedLen returns the buffer length required for the given dimensions.
func ExpectedLen(width, height int) int {
	return width * height * BytesPerPixel
}

// ValidateSize checks that a buffer of length n can hold a width x height
// RGB image exactly.
func ValidateSize(n, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidBufferSize, width, height)
	}
	if want := ExpectedLen(width, height); n != want {
		return fmt.Errorf("%w: got %d bytes, want %d for %dx%d",
			ErrInvalidBufferSize, n, want, width, height)
	}
	return nil
}

// NewRawBuffer creates a zeroed buffer with the given dimensions.
func NewRawBuffer(width, height int) (*RawBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidBufferSize, width, height)
	}
	return &RawBuffer{
		pix:    make([]byte, ExpectedLen(width, height)),
		width:  width,
		height: height,
	}, nil
}

// CopyFromRaw validates pix and returns a buffer owning a copy of it.
func CopyFromRaw(pix []byte, width, height int) (*RawBuffer, error) {
	if err := ValidateSize(len(pix), width, height); err != nil {
		return nil, err
	}
	owned := make([]byte, len(pix))
	copy(owned, pix)
	return &RawBuffer{pix: owned, width: width, height: height}, nil
}

// Width returns the image width in pixels.
func (b *RawBuffer) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *RawBuffer) Height() int {
	return b.height
}

// Bounds returns the image dimensions as (width, height).
func (b *RawBuffer) Bounds() (int, int) {
	return b.width, b.height
}

// Pix returns the interleaved pixel data. The slice is shared with the
// buffer; treat it as read-only.
func (b *RawBuffer) Pix() []byte {
	return b.pix
}

// Stride returns the number of bytes per row.
func (b *RawBuffer) Stride() int {
	return b.width * BytesPerPixel
}

// PixelOffset returns the byte offset of pixel (x, y), or -1 if the
// coordinates are out of bounds.
func (b *RawBuffer) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return (y*b.width + x) * BytesPerPixel
}

// RGB returns the channel values of pixel (x, y).
// Out-of-bounds coordinates return black.
func (b *RawBuffer) RGB(x, y int) (r, g, bl uint8) {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return 0, 0, 0
	}
	return b.pix[off], b.pix[off+1], b.pix[off+2]
}

// RowBytes returns the pixel data of row y, or nil if y is out of bounds.
func (b *RawBuffer) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.Stride()
	return b.pix[start : start+b.Stride()]
}
