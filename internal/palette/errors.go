package palette

import (
	"github.com/pkg/errors"

	"github.com/ironsheep/palette-tools-mcp/internal/imaging"
)

var (
	// ErrUnsupportedImageKind reports an image with an alpha channel under
	// Strict admission.
	ErrUnsupportedImageKind = errors.New("unsupported image kind")

	// ErrInvalidOptions reports an unknown mode name or an invalid region.
	ErrInvalidOptions = errors.New("invalid options")
)

// Error kind names returned by Kind.
const (
	KindRead            = "read"
	KindDecode          = "decode"
	KindUnsupportedKind = "unsupported_image_kind"
	KindFetch           = "fetch"
	KindFormatWrite     = "format_write"
	KindInvalidOptions  = "invalid_options"
	KindInternal        = "internal"
)

// Kind names the stage that produced err, or "" for a nil error.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnsupportedImageKind):
		return KindUnsupportedKind
	case errors.Is(err, imaging.ErrRead):
		return KindRead
	case errors.Is(err, imaging.ErrFetch):
		return KindFetch
	case errors.Is(err, imaging.ErrDecode):
		return KindDecode
	case errors.Is(err, imaging.ErrFormatWrite):
		return KindFormatWrite
	case errors.Is(err, ErrInvalidOptions):
		return KindInvalidOptions
	default:
		return KindInternal
	}
}
