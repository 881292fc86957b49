package material

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrUnknownMaterial is returned by Lookup for names not in the library
var ErrUnknownMaterial = errors.New("unknown material")

// library holds the named presets. Lookup hands out shared pointers, so the
// entries are never modified.
var library = map[string]*Material{
	"blank": NewMaterial(core.Black, core.Black, core.Black, 0),

	// Matte
	"red_matte":   NewMaterial(core.NewColor(0.1, 0, 0), core.NewColor(0.8, 0.1, 0.1), core.Black, 1),
	"green_matte": NewMaterial(core.NewColor(0, 0.1, 0), core.NewColor(0.1, 0.8, 0.1), core.Black, 1),
	"blue_matte":  NewMaterial(core.NewColor(0, 0, 0.1), core.NewColor(0.1, 0.1, 0.8), core.Black, 1),

	// Glossy / plastic
	"white_glossy":   NewMaterial(core.NewColor(0.1, 0.1, 0.1), core.NewColor(0.8, 0.8, 0.8), core.NewColor(0.5, 0.5, 0.5), 64),
	"yellow_plastic": NewMaterial(core.NewColor(0.1, 0.1, 0), core.NewColor(0.9, 0.9, 0.1), core.NewColor(0.4, 0.4, 0.2), 32),
	"shiny":          NewMaterial(core.NewColor(0.3, 0.3, 0.3), core.NewColor(0.5, 0.5, 0.5), core.White, 64),
	"shiny_plane":    NewMaterial(core.NewColor(0.3, 0.3, 0.3), core.White, core.White, 64),

	// Metallic
	"silver_metal": NewMaterial(core.NewColor(0.05, 0.05, 0.05), core.NewColor(0.6, 0.6, 0.6), core.NewColor(0.9, 0.9, 0.9), 128),
	"gold_metal":   NewMaterial(core.NewColor(0.05, 0.04, 0), core.NewColor(0.83, 0.68, 0.21), core.NewColor(0.9, 0.8, 0.4), 128),

	// Dark / mirror
	"black_shiny": NewMaterial(core.NewColor(0.02, 0.02, 0.02), core.NewColor(0.05, 0.05, 0.05), core.NewColor(0.9, 0.9, 0.9), 64),
	"black_plane": NewMaterial(core.Black, core.NewColor(0.025, 0.025, 0.025), core.NewColor(0.1, 0.1, 0.1), 8),
	"blue_mirror": NewMaterial(core.NewColor(0, 0, 0.1), core.NewColor(0, 0, 0.2), core.White, 256),
}

// Lookup returns the shared preset registered under name
func Lookup(name string) (*Material, error) {
	m, ok := library[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
	}
	return m, nil
}

// MustLookup is like Lookup but panics on unknown names. It is meant for
// built-in scenes that reference presets by literal name.
func MustLookup(name string) *Material {
	m, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return m
}

// Names returns the preset names in sorted order
func Names() []string {
	names := make([]string, 0, len(library))
	for name := range library {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
