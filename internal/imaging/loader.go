package imaging

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"sync"
)

// ImageCache holds decoded bezel and mask assets keyed by file path.
//
// Bezel artwork is shared by every screenshot of the same device, so a batch
// decodes each asset once. The cache is safe for concurrent use by the
// compositions of a batch. Cached images must be treated as read-only; Ops
// implementations never modify their inputs.
//
// Entries stay until Evict or Clear is called.
type ImageCache struct {
	mu     sync.RWMutex
	ops    Ops
	images map[string]image.Image
}

// NewImageCache creates an empty cache that decodes with Raster.
func NewImageCache() *ImageCache {
	return NewImageCacheWithOps(NewRaster())
}

// NewImageCacheWithOps creates an empty cache that decodes with ops.
func NewImageCacheWithOps(ops Ops) *ImageCache {
	return &ImageCache{
		ops:    ops,
		images: make(map[string]image.Image),
	}
}

// Load returns the decoded image at path, reading and decoding it on the
// first request. Paths are used verbatim as keys.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	img, ok := c.images[path]
	c.mu.RUnlock()
	if ok {
		return img, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	img, err = c.ops.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	c.mu.Lock()
	// Another goroutine may have stored the same asset; keep the first so
	// callers share one copy.
	if prev, ok := c.images[path]; ok {
		img = prev
	} else {
		c.images[path] = img
	}
	c.mu.Unlock()
	return img, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear removes every cached image.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes one cached image. Unknown paths are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo describes an encoded image without decoding its pixels.
type ImageInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	// Format is the decoder name reported by the image package, e.g. "png".
	Format        string `json:"format"`
	FileSizeBytes int64  `json:"file_size_bytes"`
}

// ReadImageInfo reads the header of the image at path.
func ReadImageInfo(path string) (*ImageInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image header: %w", err)
	}
	return &ImageInfo{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Format:        format,
		FileSizeBytes: int64(len(data)),
	}, nil
}
