package imaging

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// DefaultMaxFetchBytes caps the size of a fetched image body.
const DefaultMaxFetchBytes = 32 << 20

// Fetcher retrieves raw image bytes from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, rawURL string) ([]byte, error)

// Fetch calls f(ctx, rawURL).
func (f FetcherFunc) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	return f(ctx, rawURL)
}

// HTTPFetcher fetches images over HTTP(S) with a plain GET.
//
// Timeouts and retries are not applied here; configure them on Client or
// through ctx.
type HTTPFetcher struct {
	Client   *http.Client
	MaxBytes int64
}

// NewHTTPFetcher returns a fetcher using client, or http.DefaultClient when
// client is nil. maxBytes <= 0 selects DefaultMaxFetchBytes.
func NewHTTPFetcher(client *http.Client, maxBytes int64) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFetchBytes
	}
	return &HTTPFetcher{Client: client, MaxBytes: maxBytes}
}

// Fetch downloads the body at rawURL.
//
// Every failure is a *StageError of kind ErrFetch: an unparsable URL, a
// scheme other than http or https, a transport error, a non-2xx status, a
// body read error, or a body larger than MaxBytes.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, stageError(ErrFetch, errors.Wrapf(err, "invalid url %q", rawURL))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, stageError(ErrFetch, errors.Errorf("unsupported url scheme %q", u.Scheme))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, stageError(ErrFetch, errors.Wrap(err, "building request"))
	}
	req.Header.Set("Accept", "image/*")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, stageError(ErrFetch, errors.Wrap(err, "request failed"))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, stageError(ErrFetch, errors.Errorf("unexpected status %s", resp.Status))
	}

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxFetchBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, stageError(ErrFetch, errors.Wrap(err, "reading response body"))
	}
	if int64(len(data)) > limit {
		return nil, stageError(ErrFetch, errors.Errorf("response body exceeds %d bytes", limit))
	}

	return data, nil
}
