package gpe

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Grid holds the real-space and reciprocal-space coordinates of the
// periodic simulation box. It is fixed at construction and never mutated.
type Grid struct {
	Nx, Ny int
	Dx, Dy float64
	Lx, Ly float64

	// Cell-centered coordinates with the origin at the box center.
	X, Y []float64

	// Angular wavenumbers in FFT ordering (0, positive, negative).
	Kx, Ky []float64
}

// NewGrid builds a square-celled Nx x Ny periodic grid with spacing dx.
func NewGrid(nx, ny int, dx float64) (*Grid, error) {
	if nx <= 0 || ny <= 0 {
		return nil, ErrGridSize
	}
	if dx <= 0 {
		return nil, ErrGridSpacing
	}
	g := &Grid{
		Nx: nx, Ny: ny,
		Dx: dx, Dy: dx,
		Lx: float64(nx) * dx,
		Ly: float64(ny) * dx,
	}
	g.X = axis(nx, dx)
	g.Y = axis(ny, dx)
	g.Kx = waveNumbers(nx, dx)
	g.Ky = waveNumbers(ny, dx)
	return g, nil
}

// Wrap maps z back into the periodic box, [-L/2, L/2) on each axis.
func (g *Grid) Wrap(z complex128) complex128 {
	return complex(wrapCoord(real(z), g.Lx), wrapCoord(imag(z), g.Ly))
}

// NearestIndex returns the grid indices of the cell closest to z, with
// periodic wraparound on each axis.
func (g *Grid) NearestIndex(z complex128) (ix, iy int) {
	return nearest(real(z), g.Lx, g.Nx), nearest(imag(z), g.Ly, g.Ny)
}

func axis(n int, d float64) []float64 {
	l := float64(n) * d
	x := make([]float64, n)
	if n == 1 {
		return x
	}
	floats.Span(x, -l/2, l/2-d)
	return x
}

// waveNumbers follows the standard FFT frequency convention, scaled to
// angular wavenumbers: k = 2*pi*[0, 1, ..., n/2-1, -n/2, ..., -1]/(n*d).
func waveNumbers(n int, d float64) []float64 {
	k := make([]float64, n)
	scale := 2 * math.Pi / (float64(n) * d)
	for i := range k {
		f := float64(i)
		if i >= (n+1)/2 {
			f = float64(i - n)
		}
		k[i] = f * scale
	}
	return k
}

func wrapCoord(x, l float64) float64 {
	return math.Mod(math.Mod(x+l/2, l)+l, l) - l/2
}

func nearest(x, l float64, n int) int {
	i := int(math.Round((x+l/2)/l*float64(n))) % n
	if i < 0 {
		i += n
	}
	return i
}

// KineticOperator precomputes the momentum-space kinetic energy
// hbar^2*(kx^2 + ky^2)/(2m) over the grid. When soc is non-nil the bare
// quadratic kx^2 term is replaced by the shifted, renormalized lower
// dispersion branch 2*kR^2*(E-(kx/kR + k0) - E-(k0)), where k0 is the
// band minimum and kR the coupling momentum scale.
func KineticOperator(g *Grid, hbar, m float64, soc *Dispersion, kR float64) [][]float64 {
	kx2 := make([]float64, g.Nx)
	if soc != nil {
		k0 := soc.MinK()
		e0 := soc.Lower(k0)
		for i, kx := range g.Kx {
			kx2[i] = 2 * kR * kR * (soc.Lower(kx/kR+k0) - e0)
		}
	} else {
		for i, kx := range g.Kx {
			kx2[i] = kx * kx
		}
	}

	k := make([][]float64, g.Nx)
	for i := range k {
		k[i] = make([]float64, g.Ny)
		for j, ky := range g.Ky {
			k[i][j] = hbar * hbar * (kx2[i] + ky*ky) / (2 * m)
		}
	}
	return k
}
