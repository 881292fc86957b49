package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        [3]float64             `json:"color"` // Shaded color of the pixel, unclamped
	Lights       []LightContribution    `json:"lights,omitempty"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// LightContribution is what one light adds at the inspected point
type LightContribution struct {
	Type         string     `json:"type"`
	Contribution [3]float64 `json:"contribution"`
}

// InspectResult contains the result of inspecting a pixel
type InspectResult struct {
	Ray          core.Ray
	Intersection *geometry.Intersection // nil on a miss
	Color        core.Color
}

// inspectPixel casts the primary ray through a pixel and shades it
func inspectPixel(s *scene.Scene, width, height, x, y int) InspectResult {
	ray := s.Camera.GenerateRay(x, y, width, height)
	hit, _ := s.Hit(ray, 0, math.Inf(1))
	return InspectResult{
		Ray:          ray,
		Intersection: hit,
		Color:        s.Shade(ray, 0),
	}
}

// extractMaterialInfo describes the Blinn-Phong coefficients of a material
func extractMaterialInfo(mat *material.Material) map[string]interface{} {
	if mat == nil {
		return nil
	}
	return map[string]interface{}{
		"ambient":    colorArray(mat.Ambient),
		"diffuse":    colorArray(mat.Diffuse),
		"specular":   colorArray(mat.Specular),
		"shininess":  mat.Shininess,
		"reflective": mat.IsReflective(),
		"color":      hexColor(mat.Diffuse),
	}
}

// extractGeometryInfo extracts geometry information with type assertions
func extractGeometryInfo(surface geometry.Surface) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch s := surface.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(s.Center)
		properties["radius"] = s.Radius
		return "sphere", properties

	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{vecArray(s.V1), vecArray(s.V2), vecArray(s.V3)}
		properties["faceNormal"] = vecArray(s.Normal())
		return "triangle", properties

	case *geometry.Plane:
		properties["normal"] = vecArray(s.Normal)
		properties["point"] = vecArray(s.Point)
		return "plane", properties

	default:
		properties["type"] = fmt.Sprintf("%T", surface)
		return "unknown", properties
	}
}

// hexColor formats a color as #rrggbb, clamping each channel
func hexColor(c core.Color) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.R*255), int(c.G*255), int(c.B*255))
}

// handleInspect reports what the primary ray through pixel (x, y) hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseSceneRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	query := r.URL.Query()
	if query.Get("x") == "" || query.Get("y") == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "x and y are required"})
		return
	}
	pixelX, err := parseIntParam(query, "x", 0, 0, req.Width-1)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	pixelY, err := parseIntParam(query, "y", 0, 0, req.Height-1)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result := inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY)
	response := InspectResponse{Color: colorArray(result.Color)}
	hit := result.Intersection
	if hit == nil {
		writeJSON(w, http.StatusOK, response)
		return
	}

	geometryType, geometryProps := extractGeometryInfo(hit.Surface)
	response.Hit = true
	response.GeometryType = geometryType
	response.Point = vecArray(result.Ray.At(hit.T))
	response.Normal = vecArray(hit.Normal)
	response.Distance = hit.T * result.Ray.Direction.Length()
	response.Properties = map[string]interface{}{
		"material": extractMaterialInfo(hit.Material),
		"geometry": geometryProps,
	}
	for _, light := range sceneObj.Lights {
		response.Lights = append(response.Lights, LightContribution{
			Type:         string(light.Type()),
			Contribution: colorArray(light.Illuminate(sceneObj.Surfaces, result.Ray, hit)),
		})
	}

	writeJSON(w, http.StatusOK, response)
}
