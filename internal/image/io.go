package image

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the file extension is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")
)

// ToByte converts a [0, 1] channel value to 8 bits. Values outside the range
// are clamped and the result is truncated, not rounded.
func ToByte(f float32) uint8 {
	if !(f > 0) { // also catches NaN
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f * 255)
}

// Pack writes the plane into dst as 8-bit channels in the given format,
// row-major from the top row. dst must hold exactly
// format.ImageBytes(width, height) bytes.
func Pack(dst []byte, src *ColorPlane, format Format) error {
	if !format.IsValid() {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, format)
	}
	info := format.Info()
	if want := format.ImageBytes(src.width, src.height); len(dst) != want {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrDataTooSmall, len(dst), want)
	}

	r, b := 0, 2
	if info.SwapRB {
		r, b = 2, 0
	}
	off := 0
	for _, c := range src.pix {
		dst[off+r] = ToByte(c[0])
		dst[off+1] = ToByte(c[1])
		dst[off+b] = ToByte(c[2])
		if info.HasAlpha {
			dst[off+3] = ToByte(c[3])
		}
		off += info.BytesPerPixel
	}
	return nil
}

// ToStdImage converts the plane to a standard library image with straight
// alpha.
func (p *ColorPlane) ToStdImage() *image.NRGBA {
	nrgba := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	// NRGBA rows are exactly 4*width bytes, the RGBA8 layout.
	_ = Pack(nrgba.Pix, p, FormatRGBA8)
	return nrgba
}

// ToStdImage converts the plane to a 16-bit grayscale image. Depths are
// clamped to [0, 1]: the near plane is black, the far plane and cleared
// pixels white.
func (p *DepthPlane) ToStdImage() *image.Gray16 {
	gray := image.NewGray16(image.Rect(0, 0, p.width, p.height))
	for y := range p.height {
		for x := range p.width {
			d := p.pix[y*p.width+x]
			v := uint16(math32.Round(math32.Max(0, math32.Min(d, 1)) * 65535))
			if math32.IsNaN(d) {
				v = 0
			}
			off := y*gray.Stride + 2*x
			// Gray16 in image package is big-endian
			gray.Pix[off] = uint8(v >> 8)
			gray.Pix[off+1] = uint8(v)
		}
	}
	return gray
}

// EncodePNG encodes img as PNG to the given writer.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// EncodeJPEG encodes img as JPEG with the given quality (1-100).
func EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	quality = max(1, min(quality, 100))
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("image: encode JPEG: %w", err)
	}
	return nil
}

// SavePNG saves img as a PNG file.
func SavePNG(path string, img image.Image) error {
	return save(path, func(w io.Writer) error { return EncodePNG(w, img) })
}

// SaveImage saves img choosing the encoder from the file extension.
// Supported formats: PNG, JPEG (quality 90).
func SaveImage(path string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return SavePNG(path, img)
	case ".jpg", ".jpeg":
		return save(path, func(w io.Writer) error { return EncodeJPEG(w, img, 90) })
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func save(path string, encode func(io.Writer) error) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := encode(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
