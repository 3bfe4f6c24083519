// Package pixel defines the value types shared by the palette pipeline:
// 8-bit RGB colors and flat pixel buffers with a known channel layout.
//
// # Channel Layouts
//
// A Buffer is a flat run of unsigned 8-bit samples grouped per pixel:
//   - RGB8: 3 samples per pixel (red, green, blue)
//   - RGBA8: 4 samples per pixel, alpha last
//   - BGRA8: 4 samples per pixel, blue first, alpha last
//
// The alpha sample of the 4-channel layouts is never read as color data;
// it only widens the stride.
package pixel
