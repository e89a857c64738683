package report

import (
	"fmt"
	"html/template"
	"strings"
)

const (
	sparklineWidth  = 120
	sparklineHeight = 28
	sparklinePad    = 2.0
)

// Sparkline renders values as a minimal inline SVG polyline, sized for a
// table footer cell. A constant or single-value series draws a flat midline;
// an empty series renders nothing.
func Sparkline(values []float64) template.HTML {
	if len(values) == 0 {
		return ""
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	span := max - min
	step := float64(sparklineWidth-2*sparklinePad) / float64(len(values))
	if len(values) > 1 {
		step = float64(sparklineWidth-2*sparklinePad) / float64(len(values)-1)
	}

	points := make([]string, 0, len(values))
	for i, v := range values {
		x := sparklinePad + float64(i)*step
		y := float64(sparklineHeight) / 2
		if span > 0 {
			// SVG y grows downward, so invert
			y = sparklinePad + (1-(v-min)/span)*(float64(sparklineHeight)-2*sparklinePad)
		}
		points = append(points, fmt.Sprintf("%.1f,%.1f", x, y))
	}

	svg := fmt.Sprintf(
		`<svg class="sparkline" width="%d" height="%d" viewBox="0 0 %d %d" preserveAspectRatio="none"><polyline points="%s" fill="none" stroke="currentColor" stroke-width="1.5"/></svg>`,
		sparklineWidth, sparklineHeight, sparklineWidth, sparklineHeight,
		strings.Join(points, " "))
	return template.HTML(svg)
}
