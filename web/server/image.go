package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// contentTypes maps the formats served by /api/image to their MIME types
var contentTypes = map[string]string{
	"png": "image/png",
	"jpg": "image/jpeg",
	"gif": "image/gif",
	"bmp": "image/bmp",
}

// handleImage renders a scene in one go and returns the encoded image.
// thumbnail=N downscales the result to fit in an N pixel square.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseSceneRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	query := r.URL.Query()
	thumbnail, err := parseIntParam(query, "thumbnail", 0, 0, 2000)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	format := query.Get("format")
	if format == "" {
		format = "png"
	}
	contentType, ok := contentTypes[format]
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("unsupported format: %s", format)})
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	img, stats, err := renderer.NewRaytracer(sceneObj, req.Width, req.Height, nil).RenderRows(r.Context(), nil)
	if err != nil {
		// Client disconnected
		return
	}

	var buf bytes.Buffer
	if err := renderer.Encode(&buf, renderer.Thumbnail(img, thumbnail), format); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
