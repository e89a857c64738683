package report

import (
	"fmt"
	"math"
)

// DefaultScaleDomain is the half-width of the symmetric return domain the
// diverging color scale maps onto
const DefaultScaleDomain = 0.05

// Endpoints of the red-white-green diverging ramp
var (
	scaleLow  = [3]int{239, 68, 68}   // #ef4444
	scaleMid  = [3]int{255, 255, 255} // #ffffff
	scaleHigh = [3]int{34, 197, 94}   // #22c55e
)

// DivergingColor maps v in [-domain, +domain] onto a red-white-green ramp
// and returns a hex color. Values outside the domain clamp to the endpoints;
// a non-positive domain falls back to DefaultScaleDomain.
func DivergingColor(v, domain float64) string {
	if domain <= 0 {
		domain = DefaultScaleDomain
	}
	t := v / domain
	if t < -1 {
		t = -1
	}
	if t > 1 {
		t = 1
	}

	from, to, frac := scaleMid, scaleHigh, t
	if t < 0 {
		to, frac = scaleLow, -t
	}

	var rgb [3]int
	for i := range rgb {
		rgb[i] = from[i] + int(math.Round(frac*float64(to[i]-from[i])))
	}
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}

// TextColorFor returns a readable text color (black or white) for the given
// background hex color, based on its relative luminance
func TextColorFor(hexColor string) string {
	var r, g, b int
	if _, err := fmt.Sscanf(hexColor, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return "#000000"
	}
	luminance := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	if luminance < 128 {
		return "#ffffff"
	}
	return "#000000"
}
