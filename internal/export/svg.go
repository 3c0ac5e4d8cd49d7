package export

import (
	"fmt"
	"math"
	"os"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Snapshot is a renderable view of the condensate at one instant: the
// density field indexed [ix][iy], the tracer ensemble, and the finger
// position, all in box coordinates.
type Snapshot struct {
	Density [][]float64
	Tracers []complex128
	Finger  complex128
	Lx, Ly  float64
}

const cellPx = 12.0

// DensitySVG renders the snapshot as an SVG heatmap with the tracer
// ensemble and the finger overlaid. Density maps to a blue-to-white
// ramp normalized against the frame peak.
func DensitySVG(s Snapshot) string {
	nx := len(s.Density)
	if nx == 0 {
		return ""
	}
	ny := len(s.Density[0])

	peak := 0.0
	for _, row := range s.Density {
		peak = math.Max(peak, floats.Max(row))
	}
	if peak == 0 {
		peak = 1
	}

	w := float64(nx) * cellPx
	h := float64(ny) * cellPx

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a1a"/>
`, w, h, w, h))

	// SVG y grows downward; flip so +y in the box points up.
	for ix, row := range s.Density {
		for iy, n := range row {
			v := n / peak
			r := int(40 + 120*v)
			g := int(60 + 140*v)
			b := int(120 + 135*v)
			sb.WriteString(fmt.Sprintf(
				"<rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" fill=\"rgb(%d,%d,%d)\"/>\n",
				float64(ix)*cellPx, float64(ny-1-iy)*cellPx, cellPx, cellPx, r, g, b))
		}
	}

	sb.WriteString(`<g fill="#00ff88">` + "\n")
	for _, p := range s.Tracers {
		x, y := toPixels(p, s.Lx, s.Ly, w, h)
		sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"1.5\"/>\n", x, y))
	}
	sb.WriteString("</g>\n")

	fx, fy := toPixels(s.Finger, s.Lx, s.Ly, w, h)
	sb.WriteString(fmt.Sprintf(
		"<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"none\" stroke=\"#ff6040\" stroke-width=\"2\"/>\n",
		fx, fy, cellPx/2))

	sb.WriteString("</svg>")
	return sb.String()
}

// WriteDensitySVG renders the snapshot and writes it to path.
func WriteDensitySVG(path string, s Snapshot) error {
	return os.WriteFile(path, []byte(DensitySVG(s)), 0644)
}

func toPixels(p complex128, lx, ly, w, h float64) (x, y float64) {
	x = (real(p)/lx + 0.5) * w
	y = (1 - (imag(p)/ly + 0.5)) * h
	return x, y
}
