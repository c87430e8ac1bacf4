package render

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette returns n distinct colours, one per surface, spaced evenly
// around the hue wheel.
func Palette(n int) []color.Color {
	if n <= 0 {
		return nil
	}
	out := make([]color.Color, n)
	for i, c := range palette(n) {
		out[i] = c
	}
	return out
}

// PaletteHex returns Palette(n) as "#rrggbb" strings for HTML charts.
func PaletteHex(n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	for i, c := range palette(n) {
		out[i] = c.Hex()
	}
	return out
}

func palette(n int) []colorful.Color {
	cols := make([]colorful.Color, n)
	for i := range cols {
		hue := 360 * float64(i) / float64(n)
		cols[i] = colorful.Hsl(hue, 0.7, 0.5).Clamped()
	}
	return cols
}
