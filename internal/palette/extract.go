package palette

import (
	"context"
	"fmt"
	"image"
	"sort"

	"fortio.org/log"
	"github.com/EdlinOrg/prominentcolor"
	"github.com/cenkalti/dominantcolor"
	"github.com/pkg/errors"

	"github.com/ironsheep/palette-tools-mcp/internal/imaging"
	"github.com/ironsheep/palette-tools-mcp/internal/notation"
	"github.com/ironsheep/palette-tools-mcp/internal/pixel"
	"github.com/ironsheep/palette-tools-mcp/internal/quantize"
)

// Swatch is one palette entry with its share of the sampled pixels.
type Swatch struct {
	Color      string         `json:"color"`      // Color in the requested notation
	RGB        pixel.RGBColor `json:"rgb"`        // RGB components
	Count      int            `json:"count"`      // Sampled pixels in this cluster
	Percentage float64        `json:"percentage"` // Share of sampled pixels (0-100)
}

// Result is an extracted palette, most dominant color first.
type Result struct {
	Notation      string   `json:"notation"`
	Strategy      string   `json:"strategy"`
	Colors        []string `json:"colors"`
	Swatches      []Swatch `json:"swatches"`
	SampledPixels int      `json:"sampled_pixels"`
	Format        string   `json:"format,omitempty"`
	HasAlpha      bool     `json:"has_alpha"`
}

// Extractor runs the palette pipeline. It holds no per-call state and is
// safe for concurrent use if its Fetcher is.
type Extractor struct {
	fetcher imaging.Fetcher
}

// New returns an Extractor that retrieves URLs with fetcher, or with a
// default HTTPFetcher when fetcher is nil.
func New(fetcher imaging.Fetcher) *Extractor {
	if fetcher == nil {
		fetcher = imaging.NewHTTPFetcher(nil, 0)
	}
	return &Extractor{fetcher: fetcher}
}

var defaultExtractor = New(nil)

// Extract runs the pipeline on encoded image bytes with the default
// Extractor.
func Extract(data []byte, opts Options) (*Result, error) {
	return defaultExtractor.Extract(data, opts)
}

// ExtractFromURL fetches an image and runs the pipeline on it with the
// default Extractor.
func ExtractFromURL(ctx context.Context, rawURL string, opts Options) (*Result, error) {
	return defaultExtractor.ExtractFromURL(ctx, rawURL, opts)
}

// Extract decodes data and extracts its palette.
func (e *Extractor) Extract(data []byte, opts Options) (*Result, error) {
	d, err := imaging.Decode(data)
	if err != nil {
		return nil, err
	}
	return e.ExtractDecoded(d, opts)
}

// ExtractFromURL fetches rawURL, waits for the body, then behaves like
// Extract. Fetch failures are always reported as imaging.ErrFetch, even
// when a custom Fetcher returns a bare error.
func (e *Extractor) ExtractFromURL(ctx context.Context, rawURL string, opts Options) (*Result, error) {
	data, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		if !errors.Is(err, imaging.ErrFetch) {
			err = &imaging.StageError{Kind: imaging.ErrFetch, Err: err}
		}
		return nil, err
	}
	log.Debugf("Fetched %d bytes from %s", len(data), rawURL)
	return e.Extract(data, opts)
}

// ExtractDecoded extracts the palette of an already decoded image.
func (e *Extractor) ExtractDecoded(d *imaging.Decoded, opts Options) (*Result, error) {
	opts = opts.normalized()

	if d.HasAlpha && opts.AlphaMode == Strict {
		return nil, fmt.Errorf("%w: %s image has an alpha channel (use permissive alpha mode to ignore it)",
			ErrUnsupportedImageKind, d.Format)
	}

	img, err := imaging.CropRegion(d.Image, opts.Region)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	img = imaging.Smooth(img, opts.SmoothRadius)

	clusters, err := cluster(img, d.HasAlpha, opts)
	if err != nil {
		return nil, err
	}

	result := newResult(clusters, opts)
	result.Format = d.Format
	result.HasAlpha = d.HasAlpha

	log.Debugf("Extracted %d colors from %s image (strategy=%s notation=%s sampled=%d)",
		len(result.Colors), d.Format, opts.Strategy, opts.Notation, result.SampledPixels)
	return result, nil
}

func cluster(img image.Image, hasAlpha bool, opts Options) (clusters []quantize.Cluster, err error) {
	if img.Bounds().Empty() {
		return []quantize.Cluster{}, nil
	}

	// The library strategies skip fully transparent pixels and have nothing
	// to work with when no pixel is visible. Such an image is still
	// admissible under Permissive mode, so it gets the histogram palette.
	strategy := opts.Strategy
	if strategy != Histogram && hasAlpha && !anyVisible(img) {
		log.Debugf("No visible pixels, using histogram instead of %s", strategy)
		strategy = Histogram
	}

	defer func() {
		if r := recover(); r != nil {
			clusters, err = nil, fmt.Errorf("%s clustering panicked: %v", strategy, r)
		}
	}()

	switch strategy {
	case KMeans:
		return kmeansClusters(img, opts)
	case Single:
		c := dominantcolor.Find(img)
		return []quantize.Cluster{{Color: pixel.FromColor(c), Count: img.Bounds().Dx() * img.Bounds().Dy()}}, nil
	default:
		return quantize.Quantize(imaging.Flatten(img, hasAlpha), *opts.Quantize), nil
	}
}

// anyVisible reports whether img has at least one pixel with non-zero alpha.
func anyVisible(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0 {
				return true
			}
		}
	}
	return false
}

// kmeansClusters runs prominentcolor's k-means++ without background masks,
// so that black, white and green regions count like any other color.
func kmeansClusters(img image.Image, opts Options) ([]quantize.Cluster, error) {
	items, err := prominentcolor.KmeansWithAll(opts.Clusters, img, prominentcolor.ArgumentNoCropping,
		prominentcolor.DefaultSize, []prominentcolor.ColorBackgroundMask{})
	if err != nil {
		return nil, fmt.Errorf("kmeans clustering: %w", err)
	}

	out := make([]quantize.Cluster, 0, len(items))
	for _, it := range items {
		if it.Cnt == 0 {
			continue
		}
		out = append(out, quantize.Cluster{
			Color: pixel.RGBColor{R: uint8(it.Color.R), G: uint8(it.Color.G), B: uint8(it.Color.B)},
			Count: it.Cnt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if opts.Quantize.MaxColors > 0 && len(out) > opts.Quantize.MaxColors {
		out = out[:opts.Quantize.MaxColors]
	}
	return out, nil
}

func newResult(clusters []quantize.Cluster, opts Options) *Result {
	total := quantize.Total(clusters)
	result := &Result{
		Notation:      opts.Notation.String(),
		Strategy:      opts.Strategy.String(),
		Colors:        make([]string, len(clusters)),
		Swatches:      make([]Swatch, len(clusters)),
		SampledPixels: total,
	}

	for i, c := range clusters {
		formatted := notation.Format(c.Color, opts.Notation)
		pct := 0.0
		if total > 0 {
			pct = float64(c.Count) / float64(total) * 100
		}
		result.Colors[i] = formatted
		result.Swatches[i] = Swatch{
			Color:      formatted,
			RGB:        c.Color,
			Count:      c.Count,
			Percentage: pct,
		}
	}
	return result
}
