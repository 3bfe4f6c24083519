package imaging

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrRead marks a failure to read image bytes from a local file.
	ErrRead = errors.New("image read failed")

	// ErrDecode marks malformed or unrecognized image bytes.
	ErrDecode = errors.New("image decode failed")

	// ErrFetch marks a failure to retrieve image bytes from a URL.
	ErrFetch = errors.New("image fetch failed")

	// ErrFormatWrite marks a failure to encode an image.
	ErrFormatWrite = errors.New("image encode failed")
)

// StageError ties a failure to the pipeline stage that produced it.
type StageError struct {
	Kind error // ErrRead, ErrDecode, ErrFetch or ErrFormatWrite
	Err  error // underlying cause
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

// Unwrap exposes both the stage kind and the cause to errors.Is and errors.As.
func (e *StageError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func stageError(kind, err error) error {
	return &StageError{Kind: kind, Err: err}
}
