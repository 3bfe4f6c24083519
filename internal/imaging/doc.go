// Package imaging provides the image collaborators of the palette pipeline.
//
// It turns opaque inputs into pixels: Decode parses encoded image bytes,
// Flatten lays the decoded image out as a pixel.Buffer, and HTTPFetcher
// retrieves image bytes from a URL. Supporting operations crop to a region,
// smooth noisy photographs, cache decoded images by path (revalidated
// against the file size and modification time) and render a
// palette as a PNG swatch strip.
//
// # Supported Formats
//
// PNG, JPEG and GIF from the standard library, plus BMP, TIFF and WebP from
// golang.org/x/image.
//
// # Alpha Detection
//
// HasAlpha reports whether a decoded image carries an alpha channel:
//   - NRGBA, NRGBA64, Alpha, Alpha16 and NYCbCrA always do
//   - RGBA and RGBA64 do when any pixel is translucent (the PNG decoder
//     returns RGBA for opaque truecolor images)
//   - Paletted images do when any palette entry is translucent
//   - all other layouts (YCbCr, Gray, CMYK) are opaque
//
// # Coordinate System
//
// Regions use 0-based pixel coordinates with (0,0) at the top-left corner.
// (X1,Y1) is inclusive and (X2,Y2) is exclusive.
//
// # Error Handling
//
// Stage failures are returned as *StageError values whose Kind is one of
// ErrRead, ErrDecode, ErrFetch or ErrFormatWrite, so callers can test them with
// errors.Is while the underlying cause stays in the chain. Invalid
// arguments such as out-of-bounds regions are plain errors.
package imaging
