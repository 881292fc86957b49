package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// orbitSceneName is the scene animated by -frames
const orbitSceneName = "orbit"

// options holds the parsed command line
type options struct {
	sceneName string
	width     int
	height    int
	bounces   int // Negative keeps the scene's own setting
	output    string
	thumbnail int
	frames    int
	delay     int
	upload    bool
}

func main() {
	// Parse command line flags
	var opts options
	flag.StringVar(&opts.sceneName, "scene", "spheres", "Built-in scene name or path to a .json scene file")
	flag.IntVar(&opts.width, "width", 500, "Image width in pixels")
	flag.IntVar(&opts.height, "height", 500, "Image height in pixels")
	flag.IntVar(&opts.bounces, "bounces", -1, "Maximum reflection bounces (default: scene setting)")
	flag.StringVar(&opts.output, "output", "", "Output file; the extension picks the format (default: <OUTPUT_DIR>/<scene>/render_<timestamp>.png)")
	flag.IntVar(&opts.thumbnail, "thumbnail", 0, "Also write a thumbnail no larger than this many pixels")
	flag.IntVar(&opts.frames, "frames", 0, "Render the orbit scene as a GIF animation with this many frames (requires -scene orbit)")
	flag.IntVar(&opts.delay, "delay", 4, "Animation frame delay in 100ths of a second")
	flag.BoolVar(&opts.upload, "upload", false, "Upload the result to S3 (configured by environment)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Whitted Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, name := range scene.BuiltinNames() {
			fmt.Printf("  %s\n", name)
		}
		fmt.Println("  <path>.json - scene file")
		fmt.Println()
		fmt.Println("Environment: S3_ACCESS_KEY, S3_SECRET_KEY, S3_ENDPOINT, S3_REGION, S3_BUCKET, CDN_URL, OUTPUT_DIR")
		fmt.Println("(also read from $RAYTRACER_ROOT_DIR/.env)")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if err := run(context.Background(), opts, cfg, renderer.NewDefaultLogger()); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// createScene builds the named scene
func createScene(sceneName string) (*scene.Scene, error) {
	return scene.Create(sceneName)
}

// outputPath picks the file to write when -output is not given
func outputPath(opts options, cfg *config.Config, now time.Time) string {
	if opts.output != "" {
		return opts.output
	}

	name := strings.TrimSuffix(filepath.Base(opts.sceneName), filepath.Ext(opts.sceneName))
	ext := ".png"
	prefix := "render"
	if opts.frames > 0 {
		ext = ".gif"
		prefix = "orbit"
	}
	return filepath.Join(cfg.OutputDir, name, fmt.Sprintf("%s_%s%s", prefix, now.Format("20060102_150405"), ext))
}

// run renders a still or an animation and writes, and optionally uploads, the result
func run(ctx context.Context, opts options, cfg *config.Config, logger core.Logger) error {
	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", opts.width, opts.height)
	}
	// The animation camera circles the origin, which only the orbit scene is built for
	if opts.frames > 0 && opts.sceneName != orbitSceneName {
		return fmt.Errorf("-frames renders the %s scene only, got %q", orbitSceneName, opts.sceneName)
	}

	var publisher *renderer.S3Publisher
	if opts.upload {
		if !cfg.UploadEnabled() {
			return fmt.Errorf("upload requested but S3_BUCKET, S3_ACCESS_KEY and S3_SECRET_KEY are not all set")
		}
		var err error
		publisher, err = renderer.NewS3Publisher(renderer.S3Options{
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			CDNURL:    cfg.CDNURL,
		}, logger)
		if err != nil {
			return err
		}
	}

	logger.Printf("Starting Whitted Raytracer...\n")
	selectedScene, err := createScene(opts.sceneName)
	if err != nil {
		return err
	}
	if opts.bounces >= 0 {
		selectedScene.MaxBounces = opts.bounces
	}
	logger.Printf("Scene %s: %d primitives, %d lights, %d bounces\n",
		opts.sceneName, selectedScene.GetPrimitiveCount(), len(selectedScene.Lights), selectedScene.MaxBounces)

	filename := outputPath(opts, cfg, time.Now())

	var img image.Image
	if opts.frames > 0 {
		frames, err := renderer.RenderAnimation(ctx, selectedScene, opts.frames, opts.width, opts.height, scene.OrbitCamera, logger)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := renderer.SaveGIF(frames, filename, opts.delay); err != nil {
			return err
		}
		img = frames[0]
	} else {
		rendered, stats := renderer.NewRaytracer(selectedScene, opts.width, opts.height, logger).RenderPass()
		logger.Printf("Render completed in %v (%.0f pixels/s)\n", stats.Elapsed, stats.PixelsPerSecond())
		if err := renderer.Save(rendered, filename); err != nil {
			return err
		}
		img = rendered
	}
	logger.Printf("Render saved as %s\n", filename)

	if opts.thumbnail > 0 {
		thumbPath := renderer.ThumbnailPath(filename)
		if opts.frames > 0 {
			// Thumbnails of animations show the first frame
			thumbPath = strings.TrimSuffix(thumbPath, filepath.Ext(thumbPath)) + ".png"
		}
		if err := renderer.Save(renderer.Thumbnail(img, opts.thumbnail), thumbPath); err != nil {
			return err
		}
		logger.Printf("Thumbnail saved as %s\n", thumbPath)
	}

	if publisher != nil {
		key := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)) + ".png"
		url, err := publisher.Publish(ctx, key, img)
		if err != nil {
			return err
		}
		logger.Printf("Published %s\n", url)
	}

	return nil
}
