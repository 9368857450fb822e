package image

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestFormat_BytesPerPixel(t *testing.T) {
	tests := []struct {
		format   Format
		expected int
	}{
		{FormatRGBA8, 4},
		{FormatRGB8, 3},
		{FormatBGR8, 3},
		{FormatBGRA8, 4},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.BytesPerPixel(); got != tt.expected {
				t.Errorf("BytesPerPixel() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestFormat_HasAlpha(t *testing.T) {
	tests := []struct {
		format   Format
		expected bool
	}{
		{FormatRGBA8, true},
		{FormatRGB8, false},
		{FormatBGR8, false},
		{FormatBGRA8, true},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.HasAlpha(); got != tt.expected {
				t.Errorf("HasAlpha() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format   Format
		expected string
	}{
		{FormatRGBA8, "RGBA8"},
		{FormatRGB8, "RGB8"},
		{FormatBGR8, "BGR8"},
		{FormatBGRA8, "BGRA8"},
		{Format(200), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestFormat_IsValid(t *testing.T) {
	if !FormatBGR8.IsValid() {
		t.Error("FormatBGR8.IsValid() = false, want true")
	}
	if formatCount.IsValid() {
		t.Error("formatCount.IsValid() = true, want false")
	}
}

func TestFormat_ImageBytes(t *testing.T) {
	tests := []struct {
		format        Format
		width, height int
		expected      int
	}{
		{FormatRGBA8, 100, 100, 40000},
		{FormatRGB8, 10, 5, 150},
		{FormatBGR8, 1, 1, 3},
		{FormatBGRA8, 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.ImageBytes(tt.width, tt.height); got != tt.expected {
				t.Errorf("ImageBytes(%d, %d) = %d, want %d", tt.width, tt.height, got, tt.expected)
			}
		})
	}
}

func TestFormat_Info_InvalidFormat(t *testing.T) {
	if info := Format(255).Info(); info != (FormatInfo{}) {
		t.Errorf("Info() = %+v, want zero value", info)
	}
}

func TestFormatFromTexture(t *testing.T) {
	tests := []struct {
		tf      gputypes.TextureFormat
		want    Format
		wantErr bool
	}{
		{gputypes.TextureFormatRGBA8Unorm, FormatRGBA8, false},
		{gputypes.TextureFormatRGBA8UnormSrgb, FormatRGBA8, false},
		{gputypes.TextureFormatBGRA8Unorm, FormatBGRA8, false},
		{gputypes.TextureFormatBGRA8UnormSrgb, FormatBGRA8, false},
		{gputypes.TextureFormatRGBA32Float, 0, true},
		{gputypes.TextureFormatDepth32Float, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.tf.String(), func(t *testing.T) {
			got, err := FormatFromTexture(tt.tf)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFormat) {
					t.Errorf("FormatFromTexture() error = %v, want %v", err, ErrInvalidFormat)
				}
				return
			}
			if err != nil {
				t.Fatalf("FormatFromTexture() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FormatFromTexture() = %v, want %v", got, tt.want)
			}
		})
	}
}
