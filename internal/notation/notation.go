package notation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/palette-tools-mcp/internal/pixel"
)

// Notation selects a textual color format.
type Notation int

const (
	// Hex is the default notation.
	Hex Notation = iota
	CMYK
	RGB
	HSL
)

var names = map[string]Notation{
	"hex":  Hex,
	"cmyk": CMYK,
	"rgb":  RGB,
	"hsl":  HSL,
}

// All lists the notations in declaration order.
func All() []Notation {
	return []Notation{Hex, CMYK, RGB, HSL}
}

func (n Notation) String() string {
	switch n {
	case CMYK:
		return "cmyk"
	case RGB:
		return "rgb"
	case HSL:
		return "hsl"
	default:
		return "hex"
	}
}

// Lookup resolves a notation name case-insensitively. The boolean is false
// when the name is not recognized, in which case Hex is returned.
func Lookup(name string) (Notation, bool) {
	n, ok := names[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Hex, false
	}
	return n, true
}

// Parse resolves a notation name, falling back to Hex for empty or
// unrecognized names.
func Parse(name string) Notation {
	n, _ := Lookup(name)
	return n
}

// Format renders c in notation n. Unknown notations render as Hex.
func Format(c pixel.RGBColor, n Notation) string {
	switch n {
	case CMYK:
		return FormatCMYK(c)
	case RGB:
		return FormatRGB(c)
	case HSL:
		return FormatHSL(c)
	default:
		return FormatHex(c)
	}
}

// FormatAll renders every color in notation n, preserving order.
func FormatAll(colors []pixel.RGBColor, n Notation) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = Format(c, n)
	}
	return out
}

// FormatHex renders c as "#RRGGBB".
func FormatHex(c pixel.RGBColor) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// FormatRGB renders c as "rgb(R,G,B)".
func FormatRGB(c pixel.RGBColor) string {
	return c.String()
}

// CMYKComponents converts c with the subtractive model. All four results
// lie in [0,1]; pure black yields (0,0,0,1).
func CMYKComponents(c pixel.RGBColor) (cy, m, y, k float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	k = 1 - math.Max(r, math.Max(g, b))
	if k == 1 {
		return 0, 0, 0, 1
	}
	cy = (1 - r - k) / (1 - k)
	m = (1 - g - k) / (1 - k)
	y = (1 - b - k) / (1 - k)
	return cy, m, y, k
}

// FormatCMYK renders c as "cmyk(C,M,Y,K)" with two-decimal fractions.
func FormatCMYK(c pixel.RGBColor) string {
	cy, m, y, k := CMYKComponents(c)
	return "cmyk(" + fraction(cy) + "," + fraction(m) + "," + fraction(y) + "," + fraction(k) + ")"
}

// fraction rounds v to two decimals, clamps it to [0,1] and trims trailing
// zeros. Clamping also turns a negative zero into 0.
func fraction(v float64) string {
	v = math.Round(v*100) / 100
	v = math.Max(0, math.Min(1, v))
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// HSLComponents converts c to hue in integer degrees [0,360) and
// saturation and lightness as integer percentages [0,100].
func HSLComponents(c pixel.RGBColor) (h, s, l int) {
	hf, sf, lf := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsl()

	h = int(math.Round(hf)) % 360
	if h < 0 {
		h += 360
	}
	s = int(math.Round(sf * 100))
	l = int(math.Round(lf * 100))
	return h, s, l
}

// FormatHSL renders c as "hsl(H,S%,L%)".
func FormatHSL(c pixel.RGBColor) string {
	h, s, l := HSLComponents(c)
	return fmt.Sprintf("hsl(%d,%d%%,%d%%)", h, s, l)
}

// ParseHex parses "#RRGGBB" (either case) or the "#RGB" shorthand.
func ParseHex(s string) (pixel.RGBColor, error) {
	col, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return pixel.RGBColor{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := col.RGB255()
	return pixel.RGBColor{R: r, G: g, B: b}, nil
}
