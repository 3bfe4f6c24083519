package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"
	"testing"
	"time"
)

// createTestImage creates a simple test image file and returns its path.
// The caller is responsible for removing the file.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	tmpFile, err := os.CreateTemp("", "test-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if err := png.Encode(tmpFile, img); err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to encode image: %v", err)
	}

	return tmpFile.Name()
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.images == nil {
		t.Fatal("NewImageCache did not initialize images map")
	}
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 100, 100, color.RGBA{255, 0, 0, 255})
	defer os.Remove(imgPath)

	d1, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if d1 == nil || d1.Image == nil {
		t.Fatal("Load returned nil image")
	}

	bounds := d1.Image.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 100 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x100", bounds.Dx(), bounds.Dy())
	}
	if d1.Format != "png" {
		t.Errorf("Format: got %s, want png", d1.Format)
	}

	// Second load should return cached image
	d2, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if d1 != d2 {
		t.Error("second Load did not return cached image")
	}
	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	cache := NewImageCache()
	_, err := cache.Load("/nonexistent/path/to/image.png")
	if err == nil {
		t.Fatal("Load should fail for non-existent file")
	}
	if !errors.Is(err, ErrRead) {
		t.Errorf("Load should fail with ErrRead, got %v", err)
	}
	if errors.Is(err, ErrDecode) {
		t.Error("a missing file is not a decode failure")
	}
}

func TestImageCache_Load_FileChanged(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 10, 10, color.RGBA{255, 0, 0, 255})
	defer os.Remove(imgPath)

	d1, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Rewrite the same path with a different image and a later mtime.
	replacement := createTestImage(t, 20, 5, color.RGBA{0, 0, 255, 255})
	defer os.Remove(replacement)
	data, err := os.ReadFile(replacement)
	if err != nil {
		t.Fatalf("failed to read replacement: %v", err)
	}
	if err := os.WriteFile(imgPath, data, 0o644); err != nil {
		t.Fatalf("failed to overwrite image: %v", err)
	}
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(imgPath, later, later); err != nil {
		t.Fatalf("failed to set mtime: %v", err)
	}

	d2, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load after rewrite failed: %v", err)
	}
	if d2 == d1 {
		t.Fatal("Load returned the stale cached image")
	}
	if b := d2.Image.Bounds(); b.Dx() != 20 || b.Dy() != 5 {
		t.Errorf("unexpected dimensions after rewrite: got %dx%d, want 20x5", b.Dx(), b.Dy())
	}
	if r, g, b, _ := d2.Image.At(0, 0).RGBA(); r != 0 || g != 0 || b != 0xffff {
		t.Errorf("expected blue after rewrite, got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}
}

func TestReadFile(t *testing.T) {
	imgPath := createTestImage(t, 4, 4, color.RGBA{1, 2, 3, 255})
	defer os.Remove(imgPath)

	data, err := ReadFile(imgPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if _, err := Decode(data); err != nil {
		t.Errorf("ReadFile returned undecodable bytes: %v", err)
	}

	_, err = ReadFile("/nonexistent/image.png")
	if !errors.Is(err, ErrRead) {
		t.Errorf("ReadFile should fail with ErrRead, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFile should keep the underlying cause, got %v", err)
	}
}

func TestImageCache_Load_InvalidImage(t *testing.T) {
	cache := NewImageCache()

	tmpFile, err := os.CreateTemp("", "invalid-image-*.png")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.WriteString("not an image")
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	_, err = cache.Load(tmpFile.Name())
	if !errors.Is(err, ErrDecode) {
		t.Errorf("Load should fail with ErrDecode for invalid image data, got %v", err)
	}
}

func TestImageCache_ClearAndEvict(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 255, 0, 255})
	defer os.Remove(imgPath)

	if _, err := cache.Load(imgPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Evict(imgPath)
	if cache.Len() != 0 {
		t.Errorf("Evict did not remove image: %d remain", cache.Len())
	}

	if _, err := cache.Load(imgPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Clear did not empty cache: %d remain", cache.Len())
	}

	// Should not panic
	cache.Evict("/nonexistent/path")
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{128, 128, 128, 255})
	defer os.Remove(imgPath)

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(imgPath); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load error: %v", err)
	}
}

func TestLoadImageInfo(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 200, 150, color.RGBA{255, 128, 64, 255})
	defer os.Remove(imgPath)

	info, err := LoadImageInfo(cache, imgPath)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}

	if info.Width != 200 {
		t.Errorf("Width: got %d, want 200", info.Width)
	}
	if info.Height != 150 {
		t.Errorf("Height: got %d, want 150", info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.ColorDepth != "8-bit" {
		t.Errorf("ColorDepth: got %s, want 8-bit", info.ColorDepth)
	}
	if info.HasAlpha {
		t.Error("HasAlpha: opaque PNG reported an alpha channel")
	}
	if info.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}
}

func TestLoadImageInfo_NonExistent(t *testing.T) {
	cache := NewImageCache()
	_, err := LoadImageInfo(cache, "/nonexistent/image.png")
	if !errors.Is(err, ErrRead) {
		t.Errorf("LoadImageInfo should fail with ErrRead, got %v", err)
	}
}
