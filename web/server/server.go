package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	addr      string
	scenesDir string
	staticDir string
	publisher *renderer.S3Publisher // nil when uploads are not configured
}

// NewServer creates a new web server. publisher may be nil.
func NewServer(addr string, scenesDir string, publisher *renderer.S3Publisher) *Server {
	return &Server{
		addr:      addr,
		scenesDir: scenesDir,
		staticDir: "static/",
		publisher: publisher,
	}
}

// SceneRequest holds the parameters shared by every scene endpoint
type SceneRequest struct {
	Scene   string `json:"scene"`   // Scene ID as listed by /api/scenes
	Width   int    `json:"width"`   // Image width
	Height  int    `json:"height"`  // Image height
	Bounces int    `json:"bounces"` // Reflection depth override, -1 keeps the scene's
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))

	// API endpoints
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/image", s.handleImage)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	log.Printf("Starting web server on %s", s.addr)
	return http.ListenAndServe(s.addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and scene files, grouped for the UI
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// SceneConfig describes a scene's defaults for the UI
type SceneConfig struct {
	Scene          string     `json:"scene"`
	MaxBounces     int        `json:"maxBounces"`
	PrimitiveCount int        `json:"primitiveCount"`
	LightCount     int        `json:"lightCount"`
	Background     [3]float64 `json:"background"`
	CameraCenter   [3]float64 `json:"cameraCenter"`
	CameraForward  [3]float64 `json:"cameraForward"`
	VFov           float64    `json:"vfov"`
}

// handleSceneConfig returns the defaults of a single scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseSceneRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	camera := sceneObj.Camera
	writeJSON(w, http.StatusOK, SceneConfig{
		Scene:          req.Scene,
		MaxBounces:     sceneObj.MaxBounces,
		PrimitiveCount: sceneObj.GetPrimitiveCount(),
		LightCount:     len(sceneObj.Lights),
		Background:     colorArray(sceneObj.Background),
		CameraCenter:   vecArray(camera.Center()),
		CameraForward:  vecArray(camera.GetCameraForward()),
		VFov:           camera.Config().VFov,
	})
}

// parseSceneRequest parses the parameters common to all scene endpoints
func (s *Server) parseSceneRequest(r *http.Request) (*SceneRequest, error) {
	query := r.URL.Query()
	req := &SceneRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "spheres" // Default scene
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 10, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 400, 10, 2000); err != nil {
		return nil, err
	}
	if req.Bounces, err = parseIntParam(query, "bounces", -1, -1, 50); err != nil {
		return nil, err
	}
	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter from URL query
func parseBoolParam(values url.Values, key string) (bool, error) {
	value := values.Get(key)
	if value == "" {
		return false, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %s", key, value)
	}
	return parsed, nil
}

// createScene builds the requested scene. Only built-in scenes and files
// listed from the scenes directory are accepted, so arbitrary paths on the
// server cannot be read.
func (s *Server) createScene(req *SceneRequest) (*scene.Scene, error) {
	scenes, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		return nil, err
	}

	found := false
	for _, group := range scenes.Groups {
		for _, info := range group.Scenes {
			if info.ID == req.Scene {
				found = true
			}
		}
	}
	if !found {
		return nil, fmt.Errorf("unknown scene: %s", req.Scene)
	}

	sceneObj, err := scene.Create(req.Scene)
	if err != nil {
		return nil, err
	}
	if req.Bounces >= 0 {
		sceneObj.MaxBounces = req.Bounces
	}
	return sceneObj, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := renderer.Encode(&buf, img, "png"); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func colorArray(c core.Color) [3]float64 {
	return [3]float64{c.R, c.G, c.B}
}
