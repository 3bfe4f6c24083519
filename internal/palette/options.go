package palette

import (
	"fmt"
	"strings"

	"github.com/ironsheep/palette-tools-mcp/internal/imaging"
	"github.com/ironsheep/palette-tools-mcp/internal/notation"
	"github.com/ironsheep/palette-tools-mcp/internal/quantize"
)

// AlphaMode decides whether images with an alpha channel are admitted.
type AlphaMode int

const (
	// Strict rejects images with an alpha channel.
	Strict AlphaMode = iota
	// Permissive admits them and ignores alpha during clustering.
	Permissive
)

func (m AlphaMode) String() string {
	if m == Permissive {
		return "permissive"
	}
	return "strict"
}

// ParseAlphaMode resolves "strict" or "permissive" case-insensitively.
// An empty name selects Strict.
func ParseAlphaMode(name string) (AlphaMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "strict":
		return Strict, nil
	case "permissive":
		return Permissive, nil
	default:
		return Strict, fmt.Errorf("%w: unknown alpha mode %q (valid: strict, permissive)", ErrInvalidOptions, name)
	}
}

// Strategy selects the clustering algorithm.
type Strategy int

const (
	// Histogram is the deterministic bucket quantizer from package quantize.
	Histogram Strategy = iota
	// KMeans runs k-means++ over a downscaled copy of the image.
	KMeans
	// Single returns the one most dominant color.
	Single
)

func (s Strategy) String() string {
	switch s {
	case KMeans:
		return "kmeans"
	case Single:
		return "single"
	default:
		return "histogram"
	}
}

// ParseStrategy resolves a strategy name. An empty name selects Histogram.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "histogram":
		return Histogram, nil
	case "kmeans":
		return KMeans, nil
	case "single":
		return Single, nil
	default:
		return Histogram, fmt.Errorf("%w: unknown strategy %q (valid: histogram, kmeans, single)", ErrInvalidOptions, name)
	}
}

// DefaultKMeansClusters is the cluster count used by the KMeans strategy
// when Options.Clusters is not set.
const DefaultKMeansClusters = 3

// Options controls one palette extraction.
type Options struct {
	// Notation is the output format. The zero value is Hex.
	Notation notation.Notation

	// AlphaMode is the admission policy. The zero value is Strict.
	AlphaMode AlphaMode

	// Strategy is the clustering algorithm. The zero value is Histogram.
	Strategy Strategy

	// Quantize tunes the Histogram strategy; MaxColors also caps the other
	// strategies. Nil selects quantize.DefaultOptions(). A non-nil value is
	// used exactly as given, so an all-zero quantize.Options means no
	// sampling cap, no merging and no refinement. Start from
	// quantize.DefaultOptions() to change a single field.
	Quantize *quantize.Options

	// Clusters is k for the KMeans strategy. 0 selects
	// DefaultKMeansClusters.
	Clusters int

	// Region optionally restricts extraction to part of the image.
	Region *imaging.Region

	// SmoothRadius applies a Gaussian blur before clustering when > 0.
	SmoothRadius float64
}

// DefaultOptions returns hex output, strict admission and the default
// histogram quantizer settings.
func DefaultOptions() Options {
	q := quantize.DefaultOptions()
	return Options{
		Notation:  notation.Hex,
		AlphaMode: Strict,
		Strategy:  Histogram,
		Quantize:  &q,
	}
}

func (o Options) normalized() Options {
	if o.Quantize == nil {
		q := quantize.DefaultOptions()
		o.Quantize = &q
	}
	if o.Clusters <= 0 {
		o.Clusters = DefaultKMeansClusters
	}
	return o
}
