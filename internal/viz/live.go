package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// shadeRamp maps normalized density to a glyph, darkest to brightest.
const shadeRamp = " .:-=+*#%@"

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	fingerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	tracerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
)

// Frame is everything the live view needs from one snapshot.
type Frame struct {
	Time    float64
	Density [][]float64  // indexed [ix][iy]
	Tracers []complex128 // positions, x + i*y
	Finger  complex128
	Lx, Ly  float64
	Norm    float64
}

// LiveView renders density snapshots as a shaded ANSI grid with tracer
// and finger markers, throttled to a fixed frame rate.
type LiveView struct {
	frameRate int
	lastFrame time.Time
	started   bool
}

func NewLiveView(frameRate int) *LiveView {
	if frameRate <= 0 {
		frameRate = 20
	}
	return &LiveView{frameRate: frameRate}
}

// Render draws the frame unless the previous one is still within the
// frame budget.
func (v *LiveView) Render(f Frame) {
	if elapsed := time.Since(v.lastFrame); v.started && elapsed < time.Second/time.Duration(v.frameRate) {
		return
	}
	v.lastFrame = time.Now()
	if !v.started {
		fmt.Print(hideCursor)
		v.started = true
	}

	nx := len(f.Density)
	if nx == 0 {
		return
	}
	ny := len(f.Density[0])

	peak := 0.0
	for _, row := range f.Density {
		for _, n := range row {
			peak = math.Max(peak, n)
		}
	}
	if peak == 0 {
		peak = 1
	}

	// Cell glyphs, then overlays on top of the shading.
	cells := make([][]string, nx)
	for ix, row := range f.Density {
		cells[ix] = make([]string, ny)
		for iy, n := range row {
			shade := int(n / peak * float64(len(shadeRamp)-1))
			cells[ix][iy] = string(shadeRamp[shade])
		}
	}
	for _, p := range f.Tracers {
		ix, iy := cellIndex(p, f.Lx, f.Ly, nx, ny)
		cells[ix][iy] = tracerStyle.Render("*")
	}
	fx, fy := cellIndex(f.Finger, f.Lx, f.Ly, nx, ny)
	cells[fx][fy] = fingerStyle.Render("O")

	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(headerStyle.Render("superfluid"))
	b.WriteByte('\n')
	for iy := ny - 1; iy >= 0; iy-- {
		for ix := 0; ix < nx; ix++ {
			b.WriteString(cells[ix][iy])
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	b.WriteString(labelStyle.Render("t="))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%8.3f  ", f.Time)))
	b.WriteString(labelStyle.Render("N="))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.6g  ", f.Norm)))
	b.WriteString(labelStyle.Render("finger="))
	b.WriteString(valueStyle.Render(fmt.Sprintf("(%.2f, %.2f)", real(f.Finger), imag(f.Finger))))
	b.WriteByte('\n')
	fmt.Print(b.String())
}

// Close restores the cursor after a live session.
func (v *LiveView) Close() {
	if v.started {
		fmt.Print(showCursor)
	}
}

func cellIndex(p complex128, lx, ly float64, nx, ny int) (int, int) {
	ix := int(math.Round((real(p)+lx/2)/lx*float64(nx))) % nx
	if ix < 0 {
		ix += nx
	}
	iy := int(math.Round((imag(p)+ly/2)/ly*float64(ny))) % ny
	if iy < 0 {
		iy += ny
	}
	return ix, iy
}
