package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	stdcolor "image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"

	// Decoders register themselves with the image package at program init.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// I/O errors.
var (
	// ErrDecodeFailure is returned when a path or stream cannot be turned
	// into pixel data: missing file, unknown format, corrupt data or an
	// image with no pixels.
	ErrDecodeFailure = errors.New("image: decode failure")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// LoadImage loads an image from the given file path, detecting the format
// from its content. Supported formats: PNG, JPEG, GIF, BMP, TIFF, WebP.
func LoadImage(path string) (*RawBuffer, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: open file: %w", ErrDecodeFailure, err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// LoadImageFromBytes decodes an image held in memory.
func LoadImageFromBytes(data []byte) (*RawBuffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, ErrEmptyData)
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from r and flattens it to RGB.
func Decode(r io.Reader) (*RawBuffer, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}
	buf, err := FromStdImage(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}
	return buf, nil
}

// FromStdImage copies a standard library image into an RGB buffer.
// Alpha is discarded; colors are taken non-premultiplied.
func FromStdImage(img image.Image) (*RawBuffer, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	buf, err := NewRawBuffer(width, height)
	if err != nil {
		return nil, err
	}

	switch src := img.(type) {
	case *image.NRGBA:
		for y := range height {
			in := src.Pix[y*src.Stride : y*src.Stride+width*4]
			out := buf.RowBytes(y)
			for x := range width {
				out[x*3] = in[x*4]
				out[x*3+1] = in[x*4+1]
				out[x*3+2] = in[x*4+2]
			}
		}
	case *image.Gray:
		for y := range height {
			in := src.Pix[y*src.Stride : y*src.Stride+width]
			out := buf.RowBytes(y)
			for x, v := range in {
				out[x*3] = v
				out[x*3+1] = v
				out[x*3+2] = v
			}
		}
	default:
		for y := range height {
			out := buf.RowBytes(y)
			for x := range width {
				c := stdcolor.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(stdcolor.NRGBA)
				out[x*3] = c.R
				out[x*3+1] = c.G
				out[x*3+2] = c.B
			}
		}
	}

	return buf, nil
}

// ToStdImage converts the buffer to an opaque *image.NRGBA.
func (b *RawBuffer) ToStdImage() *image.NRGBA {
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for y := range b.height {
		row := b.RowBytes(y)
		dstStart := y * nrgba.Stride
		for x := range b.width {
			srcOff := x * 3
			dstOff := dstStart + x*4
			nrgba.Pix[dstOff] = row[srcOff]
			nrgba.Pix[dstOff+1] = row[srcOff+1]
			nrgba.Pix[dstOff+2] = row[srcOff+2]
			nrgba.Pix[dstOff+3] = 255
		}
	}
	return nrgba
}

// EncodePNG encodes the buffer as PNG to the given writer.
func (b *RawBuffer) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, b.ToStdImage()); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// SavePNG saves the buffer as a PNG file.
func (b *RawBuffer) SavePNG(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := b.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
