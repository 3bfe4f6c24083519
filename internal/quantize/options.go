package quantize

// DefaultSampleArea is the default sampling budget: the pixel count of a
// 244x244 image.
const DefaultSampleArea = 244 * 244

const defaultBucketBits = 4

// Options tunes the quantizer. The zero value examines every pixel, never
// merges, skips refinement and uses 4-bit buckets.
type Options struct {
	// MaxSampleArea caps the number of pixels examined, expressed as an
	// area (width*height). Values <= 0 disable the cap.
	MaxSampleArea float64 `json:"max_sample_area"`

	// MergeThreshold is the Euclidean distance in normalized RGB space
	// (0 to sqrt(3)) below which two clusters are merged. 0 disables merging.
	MergeThreshold float64 `json:"merge_threshold"`

	// BucketBits is the number of high bits per channel used to key the
	// histogram, 1 to 8. Out-of-range values select 4.
	BucketBits int `json:"bucket_bits"`

	// Refinements is the number of nearest-centroid reassignment passes.
	Refinements int `json:"refinements"`

	// MaxColors truncates the result to the most dominant clusters.
	// 0 means no limit.
	MaxColors int `json:"max_colors"`
}

// DefaultOptions returns the options used by the palette pipeline: a
// 244x244 sampling budget, no forced merging, 4-bit buckets and a single
// refinement pass.
func DefaultOptions() Options {
	return Options{
		MaxSampleArea: DefaultSampleArea,
		BucketBits:    defaultBucketBits,
		Refinements:   1,
	}
}

func (o Options) normalized() Options {
	if o.BucketBits < 1 || o.BucketBits > 8 {
		o.BucketBits = defaultBucketBits
	}
	if o.Refinements < 0 {
		o.Refinements = 0
	}
	if o.MergeThreshold < 0 {
		o.MergeThreshold = 0
	}
	if o.MaxColors < 0 {
		o.MaxColors = 0
	}
	return o
}
