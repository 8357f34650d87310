package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func TestFromStdImage_NRGBA(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	nrgba.Set(3, 3, color.NRGBA{R: 128, G: 64, B: 32, A: 200})

	buf, err := FromStdImage(nrgba)
	if err != nil {
		t.Fatalf("FromStdImage failed: %v", err)
	}

	if buf.Width() != 10 || buf.Height() != 10 {
		t.Errorf("Dimensions = (%d, %d), want (10, 10)", buf.Width(), buf.Height())
	}

	r, g, b := buf.RGB(3, 3)
	if r != 128 || g != 64 || b != 32 {
		t.Errorf("Pixel = (%d, %d, %d), want (128, 64, 32)", r, g, b)
	}
}

func TestFromStdImage_Gray(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 10, 10))
	gray.SetGray(5, 5, color.Gray{Y: 128})

	buf, err := FromStdImage(gray)
	if err != nil {
		t.Fatalf("FromStdImage failed: %v", err)
	}

	r, g, b := buf.RGB(5, 5)
	if r != 128 || g != 128 || b != 128 {
		t.Errorf("Pixel = (%d, %d, %d), want (128, 128, 128)", r, g, b)
	}
}

func TestFromStdImage_RGBAOpaque(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 4, 4))
	rgba.Set(1, 2, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	buf, err := FromStdImage(rgba)
	if err != nil {
		t.Fatalf("FromStdImage failed: %v", err)
	}

	r, g, b := buf.RGB(1, 2)
	if r != 200 || g != 100 || b != 50 {
		t.Errorf("Pixel = (%d, %d, %d), want (200, 100, 50)", r, g, b)
	}
}

func TestFromStdImage_OffsetBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	src.Set(5, 6, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	sub := src.SubImage(image.Rect(4, 4, 8, 8))

	buf, err := FromStdImage(sub)
	if err != nil {
		t.Fatalf("FromStdImage failed: %v", err)
	}
	if buf.Width() != 4 || buf.Height() != 4 {
		t.Fatalf("Dimensions = (%d, %d), want (4, 4)", buf.Width(), buf.Height())
	}
	if r, g, b := buf.RGB(1, 2); r != 1 || g != 2 || b != 3 {
		t.Errorf("Pixel = (%d, %d, %d), want (1, 2, 3)", r, g, b)
	}
}

func TestFromStdImage_Empty(t *testing.T) {
	_, err := FromStdImage(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	if !errors.Is(err, ErrInvalidBufferSize) {
		t.Errorf("FromStdImage(empty) error = %v, want ErrInvalidBufferSize", err)
	}
}

func TestToStdImage(t *testing.T) {
	buf, _ := NewRawBuffer(10, 10)
	setRGB(t, buf, 5, 5, 200, 100, 50)

	c := buf.ToStdImage().NRGBAAt(5, 5)
	if c.R != 200 || c.G != 100 || c.B != 50 || c.A != 255 {
		t.Errorf("Pixel = %v, want {200, 100, 50, 255}", c)
	}
}

func TestEncodePNG_Decode(t *testing.T) {
	buf, _ := NewRawBuffer(32, 32)
	for y := range 32 {
		for x := range 32 {
			setRGB(t, buf, x, y, uint8(x*8), uint8(y*8), 128)
		}
	}

	var encoded bytes.Buffer
	if err := buf.EncodePNG(&encoded); err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	decoded, err := Decode(bytes.NewReader(encoded.Bytes()))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !bytes.Equal(buf.Pix(), decoded.Pix()) {
		t.Error("PNG round trip changed pixel data")
	}
}

func TestDecodeRegisteredFormats(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := range 8 {
		for x := range 8 {
			src.Set(x, y, color.NRGBA{R: 100, G: 150, B: 200, A: 255})
		}
	}

	encoders := map[string]func(*bytes.Buffer) error{
		"png":  func(w *bytes.Buffer) error { return png.Encode(w, src) },
		"jpeg": func(w *bytes.Buffer) error { return jpeg.Encode(w, src, &jpeg.Options{Quality: 95}) },
		"bmp":  func(w *bytes.Buffer) error { return bmp.Encode(w, src) },
		"tiff": func(w *bytes.Buffer) error { return tiff.Encode(w, src, nil) },
	}

	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			var data bytes.Buffer
			if err := encode(&data); err != nil {
				t.Fatalf("encode failed: %v", err)
			}

			buf, err := LoadImageFromBytes(data.Bytes())
			if err != nil {
				t.Fatalf("LoadImageFromBytes failed: %v", err)
			}
			if buf.Width() != 8 || buf.Height() != 8 {
				t.Fatalf("Dimensions = (%d, %d), want (8, 8)", buf.Width(), buf.Height())
			}

			// JPEG is lossy, so allow a small tolerance everywhere.
			r, g, b := buf.RGB(4, 4)
			if absDiff(r, 100) > 6 || absDiff(g, 150) > 6 || absDiff(b, 200) > 6 {
				t.Errorf("Pixel = (%d, %d, %d), want ~(100, 150, 200)", r, g, b)
			}
		})
	}
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.png")

	buf, _ := NewRawBuffer(5, 3)
	setRGB(t, buf, 4, 2, 9, 9, 9)
	if err := buf.SavePNG(path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	loaded, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if !bytes.Equal(buf.Pix(), loaded.Pix()) {
		t.Error("LoadImage returned different pixel data")
	}
}

func TestLoadImageErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.png")},
		{"corrupt data", garbage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadImage(tt.path)
			if !errors.Is(err, ErrDecodeFailure) {
				t.Errorf("LoadImage() error = %v, want ErrDecodeFailure", err)
			}
		})
	}
}

func TestLoadImageFromBytesEmpty(t *testing.T) {
	_, err := LoadImageFromBytes(nil)
	if !errors.Is(err, ErrDecodeFailure) || !errors.Is(err, ErrEmptyData) {
		t.Errorf("LoadImageFromBytes(nil) error = %v, want ErrDecodeFailure and ErrEmptyData", err)
	}
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}
