package renderer

import (
	"context"
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// RowResult is reported after each finished row
type RowResult struct {
	Y         int          // Row index, 0 at the top
	Colors    []core.Color // Unclamped colors of the row
	Completed int          // Rows finished so far
	Total     int          // Rows in the image
}

// Raytracer drives a scene render into an 8-bit image
type Raytracer struct {
	scene  *scene.Scene
	width  int
	height int
	logger core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards progress output.
func NewRaytracer(s *scene.Scene, width, height int, logger core.Logger) *Raytracer {
	return &Raytracer{
		scene:  s,
		width:  width,
		height: height,
		logger: logger,
	}
}

// Render renders s at the given size and returns the image with its stats
func Render(s *scene.Scene, width, height int) (*image.RGBA, RenderStats) {
	return NewRaytracer(s, width, height, nil).RenderPass()
}

// RenderPass renders the whole image in one go
func (rt *Raytracer) RenderPass() (*image.RGBA, RenderStats) {
	// Without a callback or a cancellable context this cannot fail
	img, stats, _ := rt.RenderRows(context.Background(), nil)
	return img, stats
}

// RenderRows renders top to bottom, writing each row into the image as it
// completes and reporting it to onRow if set. The context is checked between
// rows; on cancellation the partial image is returned with the context error.
func (rt *Raytracer) RenderRows(ctx context.Context, onRow func(RowResult) error) (*image.RGBA, RenderStats, error) {
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	stats := RenderStats{
		Width:       rt.width,
		Height:      rt.height,
		TotalPixels: rt.width * rt.height,
	}
	start := time.Now()
	logEvery := max(1, rt.height/10)

	err := rt.scene.RenderRows(rt.width, rt.height, func(y int, row []core.Color) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		for x, c := range row {
			img.SetRGBA(x, y, ToColor(c))
		}
		stats.RowsCompleted++

		if rt.logger != nil && (stats.RowsCompleted%logEvery == 0 || stats.RowsCompleted == rt.height) {
			rt.logger.Printf("Rendered %d/%d rows (%.0f%%)\n",
				stats.RowsCompleted, rt.height, 100*float64(stats.RowsCompleted)/float64(rt.height))
		}

		if onRow != nil {
			return onRow(RowResult{Y: y, Colors: row, Completed: stats.RowsCompleted, Total: rt.height})
		}
		return nil
	})

	stats.Elapsed = time.Since(start)
	stats.AverageLuminance = CalculateAverageLuminance(img)
	return img, stats, err
}
