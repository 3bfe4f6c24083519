package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/ironsheep/palette-tools-mcp/internal/pixel"
)

// fill paints every pixel of img with c.
func fill(img interface {
	Set(x, y int, c color.Color)
	Bounds() image.Rectangle
}, c color.Color) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

// encodePNG encodes img as PNG bytes.
func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func TestDecode_Formats(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	fill(img, color.RGBA{200, 100, 50, 255})

	var jpg, gf bytes.Buffer
	if err := jpeg.Encode(&jpg, img, nil); err != nil {
		t.Fatalf("jpeg encode: %v", err)
	}
	if err := gif.Encode(&gf, img, nil); err != nil {
		t.Fatalf("gif encode: %v", err)
	}

	tests := []struct {
		name   string
		data   []byte
		format string
	}{
		{"png", encodePNG(t, img), "png"},
		{"jpeg", jpg.Bytes(), "jpeg"},
		{"gif", gf.Bytes(), "gif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Decode(tt.data)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if d.Format != tt.format {
				t.Errorf("Format: got %s, want %s", d.Format, tt.format)
			}
			if d.HasAlpha {
				t.Error("opaque image reported an alpha channel")
			}
			if d.Image.Bounds().Dx() != 8 {
				t.Errorf("width: got %d, want 8", d.Image.Bounds().Dx())
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"nil", nil},
		{"garbage", []byte("not an image")},
		{"truncated png", encodePNG(t, image.NewRGBA(image.Rect(0, 0, 4, 4)))[:20]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			if !errors.Is(err, ErrDecode) {
				t.Fatalf("expected ErrDecode, got %v", err)
			}
			var se *StageError
			if !errors.As(err, &se) || se.Kind != ErrDecode {
				t.Errorf("expected *StageError with ErrDecode kind, got %T", err)
			}
		})
	}
}

func TestDecode_AlphaPNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	fill(img, color.NRGBA{10, 20, 30, 255})
	img.Set(0, 0, color.NRGBA{10, 20, 30, 128})

	d, err := Decode(encodePNG(t, img))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !d.HasAlpha {
		t.Error("translucent PNG should report an alpha channel")
	}
}

func TestHasAlpha(t *testing.T) {
	opaqueRGBA := image.NewRGBA(image.Rect(0, 0, 2, 2))
	fill(opaqueRGBA, color.RGBA{1, 2, 3, 255})

	translucentRGBA := image.NewRGBA(image.Rect(0, 0, 2, 2))
	fill(translucentRGBA, color.RGBA{1, 2, 3, 100})

	opaquePal := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.White})
	alphaPal := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.Transparent})

	tests := []struct {
		name string
		img  image.Image
		want bool
	}{
		{"opaque rgba", opaqueRGBA, false},
		{"translucent rgba", translucentRGBA, true},
		{"nrgba", image.NewNRGBA(image.Rect(0, 0, 2, 2)), true},
		{"gray", image.NewGray(image.Rect(0, 0, 2, 2)), false},
		{"ycbcr", image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio420), false},
		{"opaque palette", opaquePal, false},
		{"transparent palette", alphaPal, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasAlpha(tt.img); got != tt.want {
				t.Errorf("HasAlpha: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlatten(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	img.Set(1, 0, color.NRGBA{0, 0, 255, 60})

	rgb := Flatten(img, false)
	if rgb.Layout != pixel.RGB8 {
		t.Fatalf("Layout: got %v, want rgb8", rgb.Layout)
	}
	if !bytes.Equal(rgb.Pix, []byte{255, 0, 0, 0, 0, 255}) {
		t.Errorf("RGB8 samples: got %v", rgb.Pix)
	}

	rgba := Flatten(img, true)
	if rgba.Layout != pixel.RGBA8 {
		t.Fatalf("Layout: got %v, want rgba8", rgba.Layout)
	}
	if rgba.Len() != 2 || rgba.At(1) != (pixel.RGBColor{B: 255}) {
		t.Errorf("RGBA8 pixel 1: got %v, want rgb(0,0,255)", rgba.At(1))
	}
}

func TestFlatten_OffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 8, 7))
	fill(img, color.RGBA{9, 8, 7, 255})

	buf := Flatten(img, false)
	if buf.Len() != 6 {
		t.Fatalf("Len: got %d, want 6", buf.Len())
	}
	for i := 0; i < buf.Len(); i++ {
		if buf.At(i) != (pixel.RGBColor{R: 9, G: 8, B: 7}) {
			t.Fatalf("pixel %d: got %v", i, buf.At(i))
		}
	}
}
