package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"

	"golang.org/x/image/draw"
)

const maxThumbnailBytes = 10 << 20

// ImageService scales cover images and re-encodes them as JPEG.
type ImageService struct {
	Quality int
}

// NewImageService creates an ImageService with JPEG quality 90.
func NewImageService() *ImageService {
	return &ImageService{Quality: 90}
}

// Resize fits data into a size x size box, preserving the aspect ratio.
// Images already inside the box and a size of 0 keep their dimensions but are still re-encoded.
func (s *ImageService) Resize(data []byte, size int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode thumbnail: %w", err)
	}

	bounds := img.Bounds()
	width, height := fit(bounds.Dx(), bounds.Dy(), size)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: s.Quality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

func fit(width, height, size int) (int, int) {
	if size <= 0 || (width <= size && height <= size) {
		return width, height
	}
	if width >= height {
		return size, max(1, height*size/width)
	}
	return max(1, width*size/height), size
}

// fetchThumbnail downloads, scales and stores the cover image of id under the song's name.
func (c *Cache) fetchThumbnail(ctx context.Context, id, name string) (string, error) {
	url := fmt.Sprintf(c.opts.ThumbnailURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("thumbnail request: %w", err)
	}

	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("thumbnail download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("thumbnail download: %s returned %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxThumbnailBytes))
	if err != nil {
		return "", fmt.Errorf("thumbnail download: %w", err)
	}

	scaled, err := c.images.Resize(data, c.opts.ThumbnailSize)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(c.opts.ThumbnailDir, 0755); err != nil {
		return "", fmt.Errorf("thumbnail directory: %w", err)
	}

	path := c.ThumbnailPath(name)
	if err := os.WriteFile(path, scaled, 0644); err != nil {
		return "", fmt.Errorf("write thumbnail: %w", err)
	}
	return path, nil
}
