package imaging

import (
	"image"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// ImageCache provides thread-safe caching of decoded images to avoid
// redundant decodes.
//
// The cache stores *Decoded values keyed by their file path together with
// the file's size and modification time. Load stats the file on every call
// and decodes it again when either has changed, so a file rewritten in
// place is never served stale.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or
// Clear(). For long-running processes handling many images, consider
// periodic cleanup to prevent unbounded memory growth.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cacheEntry
}

type cacheEntry struct {
	decoded *Decoded
	size    int64
	modTime time.Time
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]cacheEntry),
	}
}

// ReadFile reads an image file. Failures are *StageError values of kind
// ErrRead.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, stageError(ErrRead, errors.Wrap(err, "failed to open image"))
	}
	return data, nil
}

// Load retrieves an image from the cache, or reads and decodes it from disk
// if it is not cached or the file changed since it was cached.
//
// The image is cached using the exact path string provided. Different paths
// to the same file (e.g., relative vs absolute) result in separate entries.
//
// # Errors
//
//   - Returns a *StageError of kind ErrRead if the file cannot be read
//   - Returns a *StageError of kind ErrDecode if the contents are not a
//     supported image
func (c *ImageCache) Load(path string) (*Decoded, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, stageError(ErrRead, errors.Wrap(err, "failed to stat image"))
	}

	c.mu.RLock()
	e, ok := c.images[path]
	c.mu.RUnlock()
	if ok && e.size == stat.Size() && e.modTime.Equal(stat.ModTime()) {
		return e.decoded, nil
	}

	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	d, err := Decode(data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = cacheEntry{decoded: d, size: stat.Size(), modTime: stat.ModTime()}
	c.mu.Unlock()

	return d, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format reported by the decoder, e.g. "png" or "jpeg".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image has an alpha (transparency)
	// channel. Strict palette extraction rejects such images.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through cache and returns its metadata.
//
// Color depth is determined by the Go image type:
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16, *image.Alpha16 -> "16-bit"
//   - All other types -> "8-bit"
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	d, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, stageError(ErrRead, errors.Wrap(err, "failed to stat file"))
	}

	colorDepth := "8-bit"
	switch d.Image.(type) {
	case *image.RGBA64, *image.NRGBA64, *image.Gray16, *image.Alpha16:
		colorDepth = "16-bit"
	}

	bounds := d.Image.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        d.Format,
		ColorDepth:    colorDepth,
		HasAlpha:      d.HasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}
