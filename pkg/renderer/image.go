package renderer

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ToColor clamps each channel to [0, 1] and scales it to 8 bits, truncating
func ToColor(c core.Color) color.RGBA {
	c = c.Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * c.R),
		G: uint8(255 * c.G),
		B: uint8(255 * c.B),
		A: 255,
	}
}

// ToImage converts row-major pixels (origin top left) to an 8-bit image
func ToImage(pixels [][]core.Color) *image.RGBA {
	height := len(pixels)
	width := 0
	if height > 0 {
		width = len(pixels[0])
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y, row := range pixels {
		for x, c := range row {
			img.SetRGBA(x, y, ToColor(c))
		}
	}
	return img
}

// Save writes img to path, choosing the format from the file extension
// (png, jpg, gif, tif or bmp). Missing parent directories are created.
func Save(img image.Image, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// Encode writes img to w in the named format, e.g. "png" or "jpg"
func Encode(w io.Writer, img image.Image, format string) error {
	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return fmt.Errorf("unsupported image format %q: %w", format, err)
	}
	return imaging.Encode(w, img, f)
}

// Thumbnail downscales img to fit in a maxSize square, preserving the aspect
// ratio. Images already small enough are returned unchanged.
func Thumbnail(img image.Image, maxSize int) image.Image {
	bounds := img.Bounds()
	if maxSize <= 0 || (bounds.Dx() <= maxSize && bounds.Dy() <= maxSize) {
		return img
	}
	return resize.Thumbnail(uint(maxSize), uint(maxSize), img, resize.Bilinear)
}

// ThumbnailPath derives the thumbnail file name for an output path,
// e.g. out/render.png -> out/render_thumb.png
func ThumbnailPath(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + "_thumb" + ext
}
