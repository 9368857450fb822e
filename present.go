package rast

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"

	intImage "github.com/gogpu/rast/internal/image"
)

// Format is the 8-bit channel layout of a presented buffer.
type Format = intImage.Format

// Present formats.
const (
	FormatRGBA8 = intImage.FormatRGBA8
	FormatRGB8  = intImage.FormatRGB8
	FormatBGR8  = intImage.FormatBGR8
	FormatBGRA8 = intImage.FormatBGRA8
)

// ErrInvalidFormat is returned for an unknown or unsupported present format.
var ErrInvalidFormat = intImage.ErrInvalidFormat

// FormatFromTexture maps an 8-bit WebGPU texture format to a present
// format. sRGB variants map to their linear layout: no conversion is
// applied.
func FormatFromTexture(tf gputypes.TextureFormat) (Format, error) {
	return intImage.FormatFromTexture(tf)
}

// Resolve merges the samples of the frame into the resolved color and depth
// planes read by ColorAt, DepthAt and Image. Present calls it.
func (p *Pipeline) Resolve() error {
	switch p.phase {
	case phaseConfigured:
		return ErrNotCleared
	case phaseCleared:
		return ErrNothingRendered
	}
	p.targets.resolve()
	return nil
}

// Present resolves the frame and packs it into dst, top row first. dst
// must hold exactly Width * Height * format.BytesPerPixel() bytes.
func (p *Pipeline) Present(dst []byte, format Format) error {
	if !format.IsValid() {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, format)
	}
	if want := format.ImageBytes(p.state.Width, p.state.Height); len(dst) != want {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrBufferSize, len(dst), want)
	}
	if err := p.Resolve(); err != nil {
		return err
	}
	return intImage.Pack(dst, p.targets.resolved, format)
}

// PresentImage resolves the frame into a new upright image.
func (p *Pipeline) PresentImage() (*image.NRGBA, error) {
	if err := p.Resolve(); err != nil {
		return nil, err
	}
	return p.Image(), nil
}

// Image returns the color planes as of the last Resolve as an upright
// image. Before any Resolve it shows the clear color.
func (p *Pipeline) Image() *image.NRGBA {
	return p.targets.resolved.ToStdImage()
}

// DepthImage resolves the frame and returns its depth as a 16-bit
// grayscale image: the near plane is black.
func (p *Pipeline) DepthImage() (*image.Gray16, error) {
	if err := p.Resolve(); err != nil {
		return nil, err
	}
	return p.targets.resolvedDepth.ToStdImage(), nil
}

// SavePNG resolves the frame and writes it to a PNG file.
func (p *Pipeline) SavePNG(path string) error {
	img, err := p.PresentImage()
	if err != nil {
		return err
	}
	return intImage.SavePNG(path, img)
}

// SaveImage resolves the frame and writes it to a PNG or JPEG file chosen
// by the extension of path.
func (p *Pipeline) SaveImage(path string) error {
	img, err := p.PresentImage()
	if err != nil {
		return err
	}
	return intImage.SaveImage(path, img)
}

// ColorAt returns the resolved color of target pixel (x, y), where y = 0 is
// the bottom row. Out of range pixels are transparent black.
func (p *Pipeline) ColorAt(x, y int) f32.Vec4 {
	i := p.targets.resolvedIndex(x, y)
	if i < 0 {
		return f32.Vec4{}
	}
	return p.targets.resolved.Pix()[i]
}

// DepthAt returns the resolved depth of target pixel (x, y), where y = 0 is
// the bottom row. Out of range pixels report 0.
func (p *Pipeline) DepthAt(x, y int) float32 {
	i := p.targets.resolvedIndex(x, y)
	if i < 0 {
		return 0
	}
	return p.targets.resolvedDepth.Pix()[i]
}

// CoverageAt returns the coverage mask of target pixel (x, y): bit i is
// set when sample i was covered by any triangle since the last Clear.
func (p *Pipeline) CoverageAt(x, y int) uint32 {
	if x < 0 || y < 0 || x >= p.targets.width || y >= p.targets.height {
		return 0
	}
	return p.targets.masks[y*p.targets.width+x]
}
