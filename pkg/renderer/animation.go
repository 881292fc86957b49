package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// CameraFunc returns the camera for one frame of an animation
type CameraFunc func(frame, frames int) (*geometry.Camera, error)

// RenderAnimation renders one image per frame, swapping the scene camera
// between frames. The scene's original camera is restored afterwards.
func RenderAnimation(ctx context.Context, s *scene.Scene, frames, width, height int, cameraFn CameraFunc, logger core.Logger) ([]*image.RGBA, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("frame count must be positive, got %d", frames)
	}

	original := s.Camera
	defer s.ChangeCamera(original)

	images := make([]*image.RGBA, 0, frames)
	for frame := 0; frame < frames; frame++ {
		camera, err := cameraFn(frame, frames)
		if err != nil {
			return images, fmt.Errorf("camera for frame %d: %w", frame, err)
		}
		s.ChangeCamera(camera)

		img, stats, err := NewRaytracer(s, width, height, nil).RenderRows(ctx, nil)
		if err != nil {
			return images, fmt.Errorf("frame %d: %w", frame, err)
		}
		images = append(images, img)

		if logger != nil {
			logger.Printf("Frame %d/%d rendered in %v\n", frame+1, frames, stats.Elapsed)
		}
	}

	return images, nil
}

// SaveGIF writes frames as a looping animated GIF. delay is in 100ths of a
// second per frame.
func SaveGIF(frames []*image.RGBA, path string, delay int) error {
	if len(frames) == 0 {
		return errors.New("no frames to save")
	}

	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, len(frames)),
		Delay:     make([]int, 0, len(frames)),
		LoopCount: 0,
	}
	for _, frame := range frames {
		// Quantize to paletted for GIF
		paletted := image.NewPaletted(frame.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(paletted, paletted.Bounds(), frame, image.Point{})

		out.Image = append(out.Image, paletted)
		out.Delay = append(out.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := gif.EncodeAll(f, out); err != nil {
		return fmt.Errorf("failed to encode GIF: %w", err)
	}
	return nil
}
