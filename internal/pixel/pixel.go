package pixel

import (
	"fmt"
	"image/color"
)

// RGBColor represents an RGB color with 8-bit components.
//
// Each component ranges from 0 to 255, where:
//   - 0 represents no intensity (black for all components)
//   - 255 represents full intensity (white for all components)
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// String renders the color as "rgb(R,G,B)" with no padding or spaces.
func (c RGBColor) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// Color converts c to an opaque color.NRGBA.
func (c RGBColor) Color() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// FromColor converts any color.Color to RGBColor, dropping alpha.
//
// The 16-bit components returned by RGBA() are scaled down by right-shifting
// 8 bits. Premultiplied colors are taken as-is.
func FromColor(c color.Color) RGBColor {
	r, g, b, _ := c.RGBA()
	return RGBColor{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// Layout identifies the channel order and stride of a Buffer.
type Layout int

const (
	// RGB8 stores red, green and blue samples, 3 bytes per pixel.
	RGB8 Layout = iota
	// RGBA8 stores red, green, blue and alpha samples, 4 bytes per pixel.
	RGBA8
	// BGRA8 stores blue, green, red and alpha samples, 4 bytes per pixel.
	BGRA8
)

// LayoutFor returns RGBA8 when hasAlpha is set and RGB8 otherwise.
func LayoutFor(hasAlpha bool) Layout {
	if hasAlpha {
		return RGBA8
	}
	return RGB8
}

// Stride returns the number of samples per pixel.
func (l Layout) Stride() int {
	switch l {
	case RGBA8, BGRA8:
		return 4
	default:
		return 3
	}
}

// HasAlpha reports whether the layout carries an alpha sample.
func (l Layout) HasAlpha() bool {
	return l.Stride() == 4
}

func (l Layout) String() string {
	switch l {
	case RGB8:
		return "rgb8"
	case RGBA8:
		return "rgba8"
	case BGRA8:
		return "bgra8"
	default:
		return fmt.Sprintf("layout(%d)", int(l))
	}
}

// Buffer is a flat, read-only sequence of pixel samples.
type Buffer struct {
	Pix    []byte
	Layout Layout
}

// Len returns the number of complete pixels in the buffer.
// A trailing partial pixel is not counted.
func (b Buffer) Len() int {
	return len(b.Pix) / b.Layout.Stride()
}

// At returns the color of pixel i. The alpha sample, if any, is skipped.
// At panics if i is out of range, like a slice index.
func (b Buffer) At(i int) RGBColor {
	o := i * b.Layout.Stride()
	p := b.Pix[o : o+3 : o+3]
	if b.Layout == BGRA8 {
		return RGBColor{R: p[2], G: p[1], B: p[0]}
	}
	return RGBColor{R: p[0], G: p[1], B: p[2]}
}

// Validate reports an error if the sample count is not an exact multiple
// of the layout stride.
func (b Buffer) Validate() error {
	if rem := len(b.Pix) % b.Layout.Stride(); rem != 0 {
		return fmt.Errorf("pixel buffer of %d samples is not a multiple of %s stride %d (%d trailing)",
			len(b.Pix), b.Layout, b.Layout.Stride(), rem)
	}
	return nil
}
