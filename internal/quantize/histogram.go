package quantize

import "github.com/ironsheep/palette-tools-mcp/internal/pixel"

// histogram buckets samples into cells of a coarse RGB grid. Each cell owns
// at most one group; a group stays bound to its cell, while its
// centroid follows the samples assigned to it.
type histogram struct {
	shift   uint
	samples []pixel.RGBColor
	owner   []int // index into groups for each sample
	groups  []*group
	index   map[uint32]int
}

func newHistogram(samples []pixel.RGBColor, shift uint) *histogram {
	h := &histogram{
		shift:   shift,
		samples: samples,
		owner:   make([]int, len(samples)),
		index:   make(map[uint32]int),
	}
	for i, c := range samples {
		key := cellKey(c, shift)
		gi, ok := h.index[key]
		if !ok {
			gi = len(h.groups)
			h.groups = append(h.groups, &group{order: gi})
			h.index[key] = gi
		}
		h.groups[gi].add(c)
		h.owner[i] = gi
	}
	return h
}

func cellKey(c pixel.RGBColor, shift uint) uint32 {
	return uint32(c.R>>shift)<<16 | uint32(c.G>>shift)<<8 | uint32(c.B>>shift)
}

// refine moves every sample to the nearest centroid among its own and the
// 26 neighbouring cells and recomputes the centroids. It reports whether any
// sample changed group.
func (h *histogram) refine() bool {
	centroids := make([][3]float64, len(h.groups))
	alive := make([]bool, len(h.groups))
	for i, g := range h.groups {
		if g.count == 0 {
			continue
		}
		n := float64(g.count)
		centroids[i] = [3]float64{float64(g.sumR) / n, float64(g.sumG) / n, float64(g.sumB) / n}
		alive[i] = true
	}

	limit := int(255 >> h.shift)
	changed := false
	next := make([]int, len(h.samples))

	for si, c := range h.samples {
		best := h.owner[si]
		bestDist := sqDist(c, centroids[best])

		cr, cg, cb := int(c.R>>h.shift), int(c.G>>h.shift), int(c.B>>h.shift)
		for dr := -1; dr <= 1; dr++ {
			for dg := -1; dg <= 1; dg++ {
				for db := -1; db <= 1; db++ {
					r, g, b := cr+dr, cg+dg, cb+db
					if r < 0 || g < 0 || b < 0 || r > limit || g > limit || b > limit {
						continue
					}
					gi, ok := h.index[uint32(r)<<16|uint32(g)<<8|uint32(b)]
					if !ok || !alive[gi] {
						continue
					}
					d := sqDist(c, centroids[gi])
					if d < bestDist || (d == bestDist && h.groups[gi].order < h.groups[best].order) {
						best, bestDist = gi, d
					}
				}
			}
		}

		if best != h.owner[si] {
			changed = true
		}
		next[si] = best
	}

	for _, g := range h.groups {
		g.reset()
	}
	for si, c := range h.samples {
		h.groups[next[si]].add(c)
	}
	h.owner = next
	return changed
}

func sqDist(c pixel.RGBColor, p [3]float64) float64 {
	dr := float64(c.R) - p[0]
	dg := float64(c.G) - p[1]
	db := float64(c.B) - p[2]
	return dr*dr + dg*dg + db*db
}

// nonEmpty returns the groups that still own samples, in discovery order.
func (h *histogram) nonEmpty() []*group {
	out := make([]*group, 0, len(h.groups))
	for _, g := range h.groups {
		if g.count > 0 {
			out = append(out, g)
		}
	}
	return out
}

// merge folds together groups whose centroids are closer than threshold.
// Groups are visited in dominance order so that smaller clusters fold into
// larger ones; passes repeat until no pair is within the threshold.
func merge(groups []*group, threshold float64) []*group {
	for {
		sortGroups(groups)
		merged := false
		dead := make([]bool, len(groups))

		for i := range groups {
			if dead[i] {
				continue
			}
			for j := i + 1; j < len(groups); j++ {
				if dead[j] {
					continue
				}
				if groups[i].mean().DistanceRgb(groups[j].mean()) < threshold {
					groups[i].absorb(groups[j])
					dead[j] = true
					merged = true
				}
			}
		}

		if !merged {
			return groups
		}
		live := groups[:0]
		for i, g := range groups {
			if !dead[i] {
				live = append(live, g)
			}
		}
		groups = live
	}
}
