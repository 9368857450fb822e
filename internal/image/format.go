// Package image provides render-target planes, 8-bit present formats and
// PNG output for rast.
//
// Planes hold float32 color or depth samples. Packing converts a color
// plane into one of the byte formats a caller presents into.
package image

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Format represents an 8-bit per channel present format.
type Format uint8

const (
	// FormatRGBA8 is 32-bit RGBA (4 bytes per pixel). The default.
	FormatRGBA8 Format = iota

	// FormatRGB8 is 24-bit RGB (3 bytes per pixel, alpha dropped).
	FormatRGB8

	// FormatBGR8 is 24-bit BGR (3 bytes per pixel, alpha dropped).
	// The layout of Windows DIB sections.
	FormatBGR8

	// FormatBGRA8 is 32-bit BGRA (4 bytes per pixel).
	// Common on Windows and some GPU formats.
	FormatBGRA8

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// HasAlpha indicates if the format has an alpha channel.
	HasAlpha bool

	// SwapRB indicates blue is stored before red.
	SwapRB bool
}

// formatInfoTable contains metadata for each format.
var formatInfoTable = [formatCount]FormatInfo{
	FormatRGBA8: {BytesPerPixel: 4, HasAlpha: true},
	FormatRGB8:  {BytesPerPixel: 3},
	FormatBGR8:  {BytesPerPixel: 3, SwapRB: true},
	FormatBGRA8: {BytesPerPixel: 4, HasAlpha: true, SwapRB: true},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "RGBA8"
	case FormatRGB8:
		return "RGB8"
	case FormatBGR8:
		return "BGR8"
	case FormatBGRA8:
		return "BGRA8"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// ImageBytes calculates the total number of bytes needed for an image.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}

// FormatFromTexture maps an 8-bit WebGPU color format to a present format.
// sRGB variants map to their linear counterparts: packing does not encode.
func FormatFromTexture(tf gputypes.TextureFormat) (Format, error) {
	switch tf {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb:
		return FormatRGBA8, nil
	case gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
		return FormatBGRA8, nil
	default:
		return 0, fmt.Errorf("%w: texture format %v", ErrInvalidFormat, tf)
	}
}
