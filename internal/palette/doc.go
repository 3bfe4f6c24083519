// Package palette extracts a palette of dominant colors from an image and
// renders it in a chosen notation.
//
// The pipeline runs once per call, strictly in order:
//
//	fetch (URL form only) -> decode -> admission -> crop/smooth -> cluster -> format
//
// Nothing is shared or cached between calls; every call owns its buffers.
//
// # Admission Policy
//
// Images with an alpha channel are rejected with ErrUnsupportedImageKind
// under Strict admission (the default). Permissive admission lets them
// through and the quantizer ignores the alpha samples.
//
// # Errors
//
// All failures are terminal and no partial palette is returned. Use
// errors.Is against ErrUnsupportedImageKind, ErrInvalidOptions,
// imaging.ErrRead, imaging.ErrDecode, imaging.ErrFetch and
// imaging.ErrFormatWrite, or Kind for a stable stage name. An empty palette is a successful result.
package palette
