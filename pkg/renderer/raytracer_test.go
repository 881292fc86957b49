package renderer

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// testLogger collects log output
type testLogger struct {
	lines []string
}

// Ensure testLogger implements core.Logger
var _ core.Logger = (*testLogger)(nil)

func (tl *testLogger) Printf(format string, args ...interface{}) {
	tl.lines = append(tl.lines, fmt.Sprintf(format, args...))
}

func TestRender_DiscScene(t *testing.T) {
	img, stats := Render(scene.NewDiscScene(), 40, 40)

	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 40 {
		t.Fatalf("Unexpected image size %v", img.Bounds())
	}
	if got := img.RGBAAt(20, 20); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("Center pixel should be white, got %v", got)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("Corner pixel should be black, got %v", got)
	}

	if stats.TotalPixels != 1600 || stats.RowsCompleted != 40 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if stats.AverageLuminance <= 0 || stats.AverageLuminance >= 1 {
		t.Errorf("Expected partial coverage luminance, got %f", stats.AverageLuminance)
	}
}

func TestRaytracer_RenderRowsMatchesScene(t *testing.T) {
	s := scene.NewSpheresScene()
	pixels := s.Render(12, 9)

	var reported []int
	img, _, err := NewRaytracer(s, 12, 9, nil).RenderRows(context.Background(), func(r RowResult) error {
		reported = append(reported, r.Y)
		if r.Total != 9 || r.Completed != r.Y+1 {
			t.Errorf("Unexpected progress %d/%d for row %d", r.Completed, r.Total, r.Y)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RenderRows() error: %v", err)
	}

	if len(reported) != 9 {
		t.Errorf("Expected 9 row callbacks, got %d", len(reported))
	}
	if expected := ToImage(pixels); string(expected.Pix) != string(img.Pix) {
		t.Error("Raytracer image differs from converted scene render")
	}
}

func TestRaytracer_RenderRowsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	_, stats, err := NewRaytracer(scene.NewDiscScene(), 8, 8, nil).RenderRows(ctx, func(r RowResult) error {
		if r.Y == 1 {
			cancel()
		}
		return nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if stats.RowsCompleted != 2 {
		t.Errorf("Expected 2 completed rows, got %d", stats.RowsCompleted)
	}
}

func TestRaytracer_CallbackError(t *testing.T) {
	boom := errors.New("client gone")
	_, _, err := NewRaytracer(scene.NewDiscScene(), 4, 4, nil).RenderRows(context.Background(), func(r RowResult) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Expected callback error, got %v", err)
	}
}

func TestRaytracer_LogsProgress(t *testing.T) {
	logger := &testLogger{}
	NewRaytracer(scene.NewDiscScene(), 4, 20, logger).RenderPass()

	if len(logger.lines) != 10 {
		t.Fatalf("Expected a line every 10%%, got %d lines", len(logger.lines))
	}
	if !strings.Contains(logger.lines[len(logger.lines)-1], "20/20") {
		t.Errorf("Last line should report completion, got %q", logger.lines[len(logger.lines)-1])
	}
}
