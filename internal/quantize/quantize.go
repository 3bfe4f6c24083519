package quantize

import (
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/palette-tools-mcp/internal/pixel"
)

// Cluster is one dominant color and the number of sampled pixels it
// represents.
type Cluster struct {
	Color pixel.RGBColor `json:"color"`
	Count int            `json:"count"`
}

// Quantize extracts the dominant colors of buf.
//
// The result is ordered by descending Count, ties in discovery order. An
// empty buffer yields an empty, non-nil slice. A trailing partial pixel is
// ignored.
func Quantize(buf pixel.Buffer, opts Options) []Cluster {
	opts = opts.normalized()

	samples := sample(buf, opts.MaxSampleArea)
	if len(samples) == 0 {
		return []Cluster{}
	}

	h := newHistogram(samples, uint(8-opts.BucketBits))
	for i := 0; i < opts.Refinements; i++ {
		if !h.refine() {
			break
		}
	}

	groups := h.nonEmpty()
	if opts.MergeThreshold > 0 {
		groups = merge(groups, opts.MergeThreshold)
	}
	sortGroups(groups)

	if opts.MaxColors > 0 && len(groups) > opts.MaxColors {
		groups = groups[:opts.MaxColors]
	}

	out := make([]Cluster, len(groups))
	for i, g := range groups {
		out[i] = Cluster{Color: g.centroid(), Count: g.count}
	}
	return out
}

// QuantizeBytes is Quantize over a raw sample slice: stride 4 with alpha
// last when hasAlpha is set, stride 3 otherwise.
func QuantizeBytes(pix []byte, hasAlpha bool, opts Options) []Cluster {
	return Quantize(pixel.Buffer{Pix: pix, Layout: pixel.LayoutFor(hasAlpha)}, opts)
}

// Colors returns the cluster colors in order.
func Colors(clusters []Cluster) []pixel.RGBColor {
	out := make([]pixel.RGBColor, len(clusters))
	for i, c := range clusters {
		out[i] = c.Color
	}
	return out
}

// Total returns the number of sampled pixels the clusters account for.
func Total(clusters []Cluster) int {
	n := 0
	for _, c := range clusters {
		n += c.Count
	}
	return n
}

// sample returns every pixel of buf, or an evenly spaced subsample of
// int(area) pixels when buf holds more than area pixels.
func sample(buf pixel.Buffer, area float64) []pixel.RGBColor {
	n := buf.Len()
	budget := n
	if area > 0 && float64(n) > area {
		budget = max(int(area), 1)
	}

	out := make([]pixel.RGBColor, budget)
	for i := range out {
		out[i] = buf.At(int(int64(i) * int64(n) / int64(budget)))
	}
	return out
}

// group accumulates the samples of one bucket or merged cluster.
type group struct {
	order            int
	count            int
	sumR, sumG, sumB int64
}

func (g *group) add(c pixel.RGBColor) {
	g.count++
	g.sumR += int64(c.R)
	g.sumG += int64(c.G)
	g.sumB += int64(c.B)
}

func (g *group) absorb(o *group) {
	g.count += o.count
	g.sumR += o.sumR
	g.sumG += o.sumG
	g.sumB += o.sumB
	g.order = min(g.order, o.order)
}

func (g *group) reset() {
	g.count = 0
	g.sumR, g.sumG, g.sumB = 0, 0, 0
}

// centroid returns the rounded mean color. g.count must be positive.
func (g *group) centroid() pixel.RGBColor {
	n := int64(g.count)
	return pixel.RGBColor{
		R: uint8((g.sumR + n/2) / n),
		G: uint8((g.sumG + n/2) / n),
		B: uint8((g.sumB + n/2) / n),
	}
}

// mean returns the unrounded mean in normalized RGB.
func (g *group) mean() colorful.Color {
	n := float64(g.count) * 255
	return colorful.Color{R: float64(g.sumR) / n, G: float64(g.sumG) / n, B: float64(g.sumB) / n}
}

func sortGroups(groups []*group) {
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].order < groups[j].order
	})
}
