package imaging

import (
	"fmt"
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorMode selects how shapes are painted.
type ColorMode string

const (
	// ColorByCategory gives every category its own hue.
	ColorByCategory ColorMode = "category"

	// ColorGray paints every shape the same neutral gray, for datasets where
	// color must not help tell categories apart.
	ColorGray ColorMode = "gray"
)

// Category palette parameters (HSL).
const (
	paletteSaturation = 0.7
	paletteLightness  = 0.6
)

// NeutralGray is the fill used in ColorGray mode.
var NeutralGray = color.RGBA{R: 128, G: 128, B: 128, A: 255}

// ParseColorMode validates a mode name. The empty string selects ColorByCategory.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(s) {
	case "", ColorByCategory:
		return ColorByCategory, nil
	case ColorGray:
		return ColorGray, nil
	default:
		return "", fmt.Errorf("unknown color mode %q (want %q or %q)", s, ColorByCategory, ColorGray)
	}
}

// ShapeColor returns the fill for a 1-based category id out of numClasses.
func ShapeColor(mode ColorMode, categoryID, numClasses int) color.RGBA {
	if mode == ColorGray {
		return NeutralGray
	}
	return CategoryColor(categoryID, numClasses)
}

// CategoryColor spreads hues evenly around the color wheel:
// H = (id-1)·360/numClasses, S = 0.7, L = 0.6.
func CategoryColor(categoryID, numClasses int) color.RGBA {
	if numClasses < 1 {
		numClasses = 1
	}
	hue := float64(categoryID-1) * 360 / float64(numClasses)
	r, g, b := colorful.Hsl(hue, paletteSaturation, paletteLightness).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#RRGGBB"
	RGB RGBColor `json:"rgb"` // RGB components
	HSL HSLColor `json:"hsl"` // HSL representation
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Parameters:
//   - img: The source image to sample from.
//   - x: X coordinate (0-based, 0 = leftmost pixel).
//   - y: Y coordinate (0-based, 0 = topmost pixel).
//
// Returns:
//   - *ColorResult: The color at (x, y) in hex, RGB and HSL form.
//   - error: Non-nil if coordinates are outside the image bounds.
//
// This is how a generated image is checked against its annotations: the pixel
// at a shape's interior point should carry that category's palette color.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	r, g, b, _ := img.At(x, y).RGBA()
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)

	cf := colorful.Color{R: float64(r8) / 255, G: float64(g8) / 255, B: float64(b8) / 255}
	h, s, l := cf.Hsl()

	return &ColorResult{
		Hex: fmt.Sprintf("#%02X%02X%02X", r8, g8, b8),
		RGB: RGBColor{R: r8, G: g8, B: b8},
		HSL: HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
	}, nil
}
