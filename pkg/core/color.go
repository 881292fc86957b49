package core

import "fmt"

// Color is an unclamped linear RGB triple. Values above 1 are legal until
// the image is quantized for output.
type Color struct {
	R, G, B float64
}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Named colors. These are read-only values; never assign to them.
var (
	White  = Color{1, 1, 1}
	Gray   = Color{0.75, 0.75, 0.75}
	Black  = Color{0, 0, 0}
	Red    = Color{1, 0, 0}
	Orange = Color{1, 0.5, 0}
	Yellow = Color{1, 1, 0}
	Green  = Color{0, 1, 0}
	Blue   = Color{0, 0, 1}
	Indigo = Color{0.294, 0, 0.51}
	Violet = Color{0.933, 0.51, 0.933}
)

var namedColors = map[string]Color{
	"white":  White,
	"gray":   Gray,
	"black":  Black,
	"red":    Red,
	"orange": Orange,
	"yellow": Yellow,
	"green":  Green,
	"blue":   Blue,
	"indigo": Indigo,
	"violet": Violet,
}

// ColorByName looks up one of the named colors
func ColorByName(name string) (Color, error) {
	c, ok := namedColors[name]
	if !ok {
		return Color{}, fmt.Errorf("unknown color %q", name)
	}
	return c, nil
}

// Add returns the componentwise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// MultiplyColor returns the componentwise product of two colors
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// Divide returns the color divided by a scalar
func (c Color) Divide(scalar float64) Color {
	return Color{c.R / scalar, c.G / scalar, c.B / scalar}
}

// Clamp returns a color with components clamped to [min, max]
func (c Color) Clamp(minVal, maxVal float64) Color {
	return Color{
		R: max(minVal, min(maxVal, c.R)),
		G: max(minVal, min(maxVal, c.G)),
		B: max(minVal, min(maxVal, c.B)),
	}
}

// IsBlack reports whether all channels are exactly zero
func (c Color) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

func (c Color) String() string {
	return fmt.Sprintf("(%g, %g, %g)", c.R, c.G, c.B)
}
