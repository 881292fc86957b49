package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// SurfaceGroup is a flat list of surfaces searched linearly for the closest
// hit. When two members report exactly the same t, the one added later wins.
type SurfaceGroup struct {
	surfaces []Surface
}

// NewSurfaceGroup creates a group owning the given surfaces
func NewSurfaceGroup(surfaces ...Surface) *SurfaceGroup {
	return &SurfaceGroup{surfaces: append([]Surface(nil), surfaces...)}
}

// Add appends surfaces to the group
func (g *SurfaceGroup) Add(surfaces ...Surface) {
	g.surfaces = append(g.surfaces, surfaces...)
}

// Len returns the number of direct members
func (g *SurfaceGroup) Len() int {
	return len(g.surfaces)
}

// Surfaces returns the direct members in insertion order
func (g *SurfaceGroup) Surfaces() []Surface {
	return g.surfaces
}

// Hit returns the closest member hit in [tMin, tMax]
func (g *SurfaceGroup) Hit(ray core.Ray, tMin, tMax float64) (*Intersection, bool) {
	var closest *Intersection
	closestSoFar := tMax

	for _, surface := range g.surfaces {
		if hit, isHit := surface.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, closest != nil
}
