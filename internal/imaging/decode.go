package imaging

import (
	"bytes"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/palette-tools-mcp/internal/pixel"
)

// Decoded is a decoded image together with what the decoder reported
// about it.
type Decoded struct {
	// Image is the decoded image. The concrete type depends on the format
	// and color model (e.g., *image.RGBA, *image.NRGBA, *image.YCbCr).
	Image image.Image

	// Format is the registered format name: "png", "jpeg", "gif", "bmp",
	// "tiff" or "webp".
	Format string

	// HasAlpha indicates whether the image carries an alpha channel.
	HasAlpha bool
}

// Decode parses encoded image bytes.
//
// Returns a *StageError of kind ErrDecode if data is empty, in an
// unregistered format, or malformed. A panic inside a format decoder is
// recovered and reported the same way.
func Decode(data []byte) (d *Decoded, err error) {
	if len(data) == 0 {
		return nil, stageError(ErrDecode, errors.New("empty image data"))
	}

	defer func() {
		if r := recover(); r != nil {
			d, err = nil, stageError(ErrDecode, errors.Errorf("decoder panic: %v", r))
		}
	}()

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, stageError(ErrDecode, errors.Wrap(err, "unrecognized or malformed image"))
	}

	return &Decoded{
		Image:    img,
		Format:   format,
		HasAlpha: HasAlpha(img),
	}, nil
}

// HasAlpha reports whether img carries an alpha channel. See the package
// documentation for the per-layout rules.
func HasAlpha(img image.Image) bool {
	switch m := img.(type) {
	case *image.NRGBA, *image.NRGBA64, *image.Alpha, *image.Alpha16, *image.NYCbCrA:
		return true
	case *image.RGBA:
		return !m.Opaque()
	case *image.RGBA64:
		return !m.Opaque()
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Flatten lays img out as a flat pixel buffer in row-major order.
//
// With keepAlpha the buffer is RGBA8 with non-premultiplied color samples;
// otherwise it is packed RGB8 and the alpha channel is dropped.
func Flatten(img image.Image, keepAlpha bool) pixel.Buffer {
	nrgba := imaging.Clone(img)
	if keepAlpha {
		return pixel.Buffer{Pix: nrgba.Pix, Layout: pixel.RGBA8}
	}

	pix := make([]byte, 0, len(nrgba.Pix)/4*3)
	for i := 0; i+3 < len(nrgba.Pix); i += 4 {
		pix = append(pix, nrgba.Pix[i], nrgba.Pix[i+1], nrgba.Pix[i+2])
	}
	return pixel.Buffer{Pix: pix, Layout: pixel.RGB8}
}
