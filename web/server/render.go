package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// StripUpdate carries a band of finished rows sent via SSE
type StripUpdate struct {
	StartY    int    `json:"startY"`    // First row of the strip, 0 at the top
	EndY      int    `json:"endY"`      // One past the last row of the strip
	ImageData string `json:"imageData"` // Base64 encoded PNG of just this strip
	RowsDone  int    `json:"rowsDone"`  // Rows finished so far
	TotalRows int    `json:"totalRows"` // Rows in the image
	ElapsedMs int64  `json:"elapsedMs"` // Time since the render started
}

// CompleteUpdate is the final event of a render
type CompleteUpdate struct {
	ImageData        string  `json:"imageData"` // Base64 encoded PNG of the whole image
	ElapsedMs        int64   `json:"elapsedMs"`
	TotalPixels      int     `json:"totalPixels"`
	PixelsPerSecond  float64 `json:"pixelsPerSecond"`
	AverageLuminance float64 `json:"averageLuminance"`
	PrimitiveCount   int     `json:"primitiveCount"`
	URL              string  `json:"url,omitempty"` // Set when the image was published
}

// stripsPerImage is roughly how many strip updates a render sends
const stripsPerImage = 20

// sseWriter writes Server-Sent Events. Only the handler goroutine writes.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newSSEWriter(w http.ResponseWriter) *sseWriter {
	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, _ := w.(http.Flusher)
	return &sseWriter{w: w, flusher: flusher}
}

// send writes one event with a raw data payload
func (s *sseWriter) send(eventType, data string) error {
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", eventType, data); err != nil {
		return err
	}
	if s.flusher != nil {
		s.flusher.Flush()
	}
	return nil
}

// sendJSON writes one event with v encoded as JSON
func (s *sseWriter) sendJSON(eventType string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}
	return s.send(eventType, string(data))
}

// event writes one event, logging a failed write. Failures usually mean the
// client has disconnected.
func (s *sseWriter) event(eventType, data string) {
	if err := s.send(eventType, data); err != nil {
		log.Printf("Error sending %s event: %v", eventType, err)
	}
}

// eventJSON is event with v encoded as JSON
func (s *sseWriter) eventJSON(eventType string, v interface{}) {
	if err := s.sendJSON(eventType, v); err != nil {
		log.Printf("Error sending %s event: %v", eventType, err)
	}
}

// handleRender renders a scene and streams finished strips of rows via SSE,
// followed by the whole image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	events := newSSEWriter(w)
	ctx := r.Context()

	req, err := s.parseSceneRequest(r)
	if err != nil {
		events.event("error", fmt.Sprintf("Invalid request: %v", err))
		return
	}
	publish, err := parseBoolParam(r.URL.Query(), "publish")
	if err != nil {
		events.event("error", fmt.Sprintf("Invalid request: %v", err))
		return
	}
	if publish && s.publisher == nil {
		events.event("error", "Publishing is not configured on this server")
		return
	}

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	logger := NewWebLogger(renderID, func(msg ConsoleMessage) {
		events.eventJSON("console", msg)
	})

	sceneObj, err := s.createScene(req)
	if err != nil {
		events.event("error", err.Error())
		return
	}
	logger.Printf("Rendering %s at %dx%d with %d bounces\n", req.Scene, req.Width, req.Height, sceneObj.MaxBounces)

	startTime := time.Now()
	rowsPerStrip := max(1, req.Height/stripsPerImage)
	stripStart := 0
	var pending [][]core.Color

	raytracer := renderer.NewRaytracer(sceneObj, req.Width, req.Height, logger)
	img, stats, err := raytracer.RenderRows(ctx, func(row renderer.RowResult) error {
		pending = append(pending, row.Colors)
		if len(pending) < rowsPerStrip && row.Completed < row.Total {
			return nil
		}
		update, err := stripUpdate(pending, stripStart, row, startTime)
		if err != nil {
			return err
		}
		stripStart = row.Y + 1
		pending = nil
		if err := events.sendJSON("strip", update); err != nil {
			log.Printf("Error sending strip event: %v", err)
			return err
		}
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			// Client disconnected
			return
		}
		events.event("error", fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	imageData, err := imageToBase64PNG(img)
	if err != nil {
		events.event("error", fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	complete := CompleteUpdate{
		ImageData:        imageData,
		ElapsedMs:        stats.Elapsed.Milliseconds(),
		TotalPixels:      stats.TotalPixels,
		PixelsPerSecond:  stats.PixelsPerSecond(),
		AverageLuminance: stats.AverageLuminance,
		PrimitiveCount:   sceneObj.GetPrimitiveCount(),
	}

	if publish {
		key := fmt.Sprintf("%s_%s.png", sceneKey(req.Scene), startTime.Format("20060102_150405"))
		url, err := s.publisher.Publish(ctx, key, img)
		if err != nil {
			events.event("error", fmt.Sprintf("Publishing failed: %v", err))
			return
		}
		complete.URL = url
	}

	events.eventJSON("complete", complete)
}

// stripUpdate encodes the pending rows, which start at startY and end with
// the row just finished
func stripUpdate(rows [][]core.Color, startY int, last renderer.RowResult, startTime time.Time) (StripUpdate, error) {
	data, err := imageToBase64PNG(renderer.ToImage(rows))
	if err != nil {
		return StripUpdate{}, fmt.Errorf("failed to encode rows %d-%d: %w", startY, last.Y, err)
	}
	return StripUpdate{
		StartY:    startY,
		EndY:      last.Y + 1,
		ImageData: data,
		RowsDone:  last.Completed,
		TotalRows: last.Total,
		ElapsedMs: time.Since(startTime).Milliseconds(),
	}, nil
}

// sceneKey turns a scene ID (a name or a file path) into an object key prefix
func sceneKey(id string) string {
	base := filepath.Base(id)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
