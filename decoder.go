package edgeview

import (
	"fmt"
	"io/fs"

	"github.com/gogpu/edgeview/internal/image"
)

// RawBuffer is an 8-bit RGB pixel buffer, row-major with interleaved
// channels. Its length is always width*height*3.
type RawBuffer = image.RawBuffer

// NewRawBuffer validates pix against width and height and returns a buffer
// that owns a copy of it.
func NewRawBuffer(pix []byte, width, height int) (*RawBuffer, error) {
	return image.CopyFromRaw(pix, width, height)
}

// Decoder turns a path into pixel data. Implementations should wrap their
// errors with ErrDecodeFailure; Pipeline.Load adds the wrap when missing.
type Decoder interface {
	Decode(path string) (*RawBuffer, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(path string) (*RawBuffer, error)

// Decode calls f(path).
func (f DecoderFunc) Decode(path string) (*RawBuffer, error) {
	return f(path)
}

// FileDecoder reads images from the local filesystem.
// Supported formats: PNG, JPEG, GIF, BMP, TIFF, WebP. Alpha is discarded.
type FileDecoder struct{}

// Decode loads and decodes the image at path.
func (FileDecoder) Decode(path string) (*RawBuffer, error) {
	return image.LoadImage(path)
}

// MemDecoder decodes images held in memory, keyed by name. It serves
// embedded assets and images received over the network.
//
// Example:
//
//	p := edgeview.NewPipeline(edgeview.WithDecoder(edgeview.MemDecoder{
//	    "logo": logoPNG,
//	}))
//	res, err := p.Load("logo")
type MemDecoder map[string][]byte

// Decode decodes the bytes stored under name. A missing name fails with
// ErrDecodeFailure wrapping fs.ErrNotExist.
func (m MemDecoder) Decode(name string) (*RawBuffer, error) {
	data, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailure, name, fs.ErrNotExist)
	}
	return image.LoadImageFromBytes(data)
}
