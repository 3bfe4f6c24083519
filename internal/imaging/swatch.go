package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/ironsheep/palette-tools-mcp/internal/pixel"
)

const (
	// DefaultSwatchSize is the edge length of one swatch tile in pixels.
	DefaultSwatchSize = 64

	// MaxSwatchSize bounds the tile edge length.
	MaxSwatchSize = 512
)

// SwatchResult contains a rendered palette strip.
type SwatchResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// RenderSwatch draws colors left to right as square tiles of size pixels
// and encodes the strip as a base64 PNG.
//
// size <= 0 selects DefaultSwatchSize; sizes above MaxSwatchSize are
// clamped. Encoding failures are *StageError values of kind ErrFormatWrite.
func RenderSwatch(colors []pixel.RGBColor, size int) (*SwatchResult, error) {
	if len(colors) == 0 {
		return nil, fmt.Errorf("no colors to render")
	}
	if size <= 0 {
		size = DefaultSwatchSize
	}
	size = min(size, MaxSwatchSize)

	strip := imaging.New(size*len(colors), size, color.Transparent)
	for i, c := range colors {
		tile := imaging.New(size, size, c.Color())
		strip = imaging.Paste(strip, tile, image.Pt(i*size, 0))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, strip, imaging.PNG); err != nil {
		return nil, stageError(ErrFormatWrite, errors.Wrap(err, "encoding swatch png"))
	}

	return &SwatchResult{
		Width:       strip.Bounds().Dx(),
		Height:      strip.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
