package texture

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/math/f32"
)

const tol = 1e-5

func vecNear(a, b f32.Vec4, eps float64) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > eps {
			return false
		}
	}
	return true
}

// gradient returns a texture whose texel (x, y) is (x/w, y/h, 0, 1).
func gradient(t *testing.T, w, h, maxLevel int) *Texture {
	t.Helper()
	texels := make([]f32.Vec4, w*h)
	for y := range h {
		for x := range w {
			texels[y*w+x] = f32.Vec4{float32(x) / float32(w), float32(y) / float32(h), 0, 1}
		}
	}
	tex, err := FromTexels(w, h, texels, maxLevel)
	if err != nil {
		t.Fatalf("FromTexels() error = %v", err)
	}
	return tex
}

func TestMaxPossibleLevel(t *testing.T) {
	tests := []struct {
		width, height int
		want          int
	}{
		{1, 1, 0},
		{4, 4, 2},
		{12, 8, 2},
		{5, 4, 0},
		{100, 50, 1},
		{64, 64, 6},
		{0, 4, 0},
	}
	for _, tt := range tests {
		if got := MaxPossibleLevel(tt.width, tt.height); got != tt.want {
			t.Errorf("MaxPossibleLevel(%d, %d) = %d, want %d", tt.width, tt.height, got, tt.want)
		}
	}
}

func TestNewClampsLevels(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{"all", AllLevels, 2},
		{"too many", 10, 2},
		{"one", 1, 1},
		{"none", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex, err := New(12, 8, f32.Vec4{1, 1, 1, 1}, tt.requested)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := tex.MaxLevel(); got != tt.want {
				t.Errorf("MaxLevel() = %d, want %d", got, tt.want)
			}
			if got := tex.RequestedLevel(); got != tt.requested {
				t.Errorf("RequestedLevel() = %d, want %d", got, tt.requested)
			}
		})
	}

	tex, _ := New(12, 8, f32.Vec4{}, AllLevels)
	if w, h := tex.LevelSize(2); w != 3 || h != 2 {
		t.Errorf("LevelSize(2) = %dx%d, want 3x2", w, h)
	}
	if w, h := tex.LevelSize(7); w != 3 || h != 2 {
		t.Errorf("LevelSize(7) = %dx%d, want clamped 3x2", w, h)
	}
}

func TestInvalidDimensions(t *testing.T) {
	if _, err := New(0, 4, f32.Vec4{}, 0); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("New(0, 4) error = %v, want %v", err, ErrInvalidDimensions)
	}
	if _, err := FromTexels(2, -1, nil, 0); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("FromTexels(2, -1) error = %v, want %v", err, ErrInvalidDimensions)
	}
	if _, err := FromTexels(2, 2, make([]f32.Vec4, 3), 0); !errors.Is(err, ErrDataTooSmall) {
		t.Errorf("FromTexels() short data error = %v, want %v", err, ErrDataTooSmall)
	}
	if _, err := FromImage(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 0); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("FromImage(empty) error = %v, want %v", err, ErrInvalidDimensions)
	}
}

func TestMipChainBoxAverage(t *testing.T) {
	tex := gradient(t, 16, 8, AllLevels)
	if tex.MaxLevel() != 3 {
		t.Fatalf("MaxLevel() = %d, want 3", tex.MaxLevel())
	}
	for k := 1; k <= tex.MaxLevel(); k++ {
		w, h := tex.LevelSize(k)
		pw, ph := tex.LevelSize(k - 1)
		if pw != 2*w || ph != 2*h {
			t.Fatalf("level %d is %dx%d, parent %dx%d", k, w, h, pw, ph)
		}
		for y := range h {
			for x := range w {
				var want f32.Vec4
				for _, d := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
					c := tex.At(2*x+d[0], 2*y+d[1], k-1)
					for i := range want {
						want[i] += c[i] / 4
					}
				}
				if got := tex.At(x, y, k); !vecNear(got, want, tol) {
					t.Errorf("level %d texel (%d, %d) = %v, want %v", k, x, y, got, want)
				}
			}
		}
	}
}

func TestSetAndRegenerate(t *testing.T) {
	tex, _ := New(2, 2, f32.Vec4{}, AllLevels)
	tex.Set(0, 0, f32.Vec4{4, 0, 0, 0})
	tex.Set(5, 5, f32.Vec4{9, 9, 9, 9}) // ignored
	tex.GenerateMipmaps()
	if got, want := tex.At(0, 0, 1), (f32.Vec4{1, 0, 0, 0}); got != want {
		t.Errorf("At(0, 0, 1) = %v, want %v", got, want)
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 0})

	tex, err := FromImage(img, AllLevels)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	tests := []struct {
		x, y int
		want f32.Vec4
	}{
		{0, 0, f32.Vec4{1, 0, 0, 1}},
		{1, 0, f32.Vec4{0, 1, 0, 1}},
		{0, 1, f32.Vec4{0, 0, 1, 1}},
		{1, 1, f32.Vec4{1, 1, 1, 0}},
	}
	for _, tt := range tests {
		if got := tex.At(tt.x, tt.y, 0); !vecNear(got, tt.want, tol) {
			t.Errorf("At(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if got, want := tex.At(0, 0, 1), (f32.Vec4{0.5, 0.5, 0.5, 0.75}); !vecNear(got, want, tol) {
		t.Errorf("level 1 = %v, want %v", got, want)
	}
}
