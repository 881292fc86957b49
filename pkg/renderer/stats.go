package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width            int           // Image width in pixels
	Height           int           // Image height in pixels
	TotalPixels      int           // Total number of pixels rendered
	RowsCompleted    int           // Rows finished before the render ended
	Elapsed          time.Duration // Wall-clock render time
	AverageLuminance float64       // Mean Rec. 709 luminance of the 8-bit output
}

// PixelsPerSecond returns the render throughput
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.RowsCompleted*s.Width) / s.Elapsed.Seconds()
}

// CalculateAverageLuminance returns the mean luminance of img in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	count := bounds.Dx() * bounds.Dy()
	if count == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA() returns 16-bit channels
			total += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 65535.0
		}
	}
	return total / float64(count)
}
