// Package quantize reduces a pixel population to a small set of dominant
// colors.
//
// The quantizer is deterministic: the same buffer and options always yield
// the same clusters in the same order. It works in four passes:
//
//  1. Sampling: buffers larger than Options.MaxSampleArea are reduced to an
//     evenly spaced subsample that covers the whole buffer.
//  2. Bucketing: samples are counted in a coarse RGB histogram whose cells
//     keep the top Options.BucketBits bits of each channel.
//  3. Refinement: every sample is reassigned to the nearest bucket centroid
//     among the 27 neighbouring cells, Options.Refinements times.
//  4. Merging: clusters closer than Options.MergeThreshold in normalized RGB
//     space are folded together with count-weighted centroids.
//
// # Ordering
//
// Clusters are always emitted by descending pixel count. Clusters with equal
// counts keep discovery order, i.e. the order in which their first sample
// appears in the buffer. This holds for every merge threshold, including 0.
//
// # Alpha
//
// For 4-channel layouts the alpha sample only widens the stride; it never
// affects clustering.
package quantize
