package storage

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const thumbnailMaxEdge = 128

// GenerateThumbnail decodes the stored photo, downscales its longest edge to
// thumbnailMaxEdge and writes the result as JPEG under the thumbnail root.
// Returns the thumbnail filename.
func (s *PhotoStore) GenerateThumbnail(name string) (string, error) {
	src, err := s.Open(name)
	if err != nil {
		return "", err
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", fmt.Errorf("decode photo %q: %w", name, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("photo %q has empty bounds", name)
	}

	scale := float64(thumbnailMaxEdge) / float64(max(width, height))
	if scale > 1 {
		scale = 1
	}

	dstW := int(float64(width) * scale)
	dstH := int(float64(height) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	thumbName := thumbnailName(name)
	resolved, err := s.resolve(s.thumbRoot, thumbName)
	if err != nil {
		return "", err
	}

	out, err := os.Create(resolved)
	if err != nil {
		return "", fmt.Errorf("create thumbnail: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, dst, &jpeg.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}

	return thumbName, nil
}

func thumbnailName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".jpg"
}
