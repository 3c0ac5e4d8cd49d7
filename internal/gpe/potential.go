package gpe

import "math"

// Trap geometry constants, in units of the chemical potential and of the
// normalized box radius.
const (
	trapHeightMu = 100.0
	trapEdge     = 0.8
	trapWidth    = 0.2
)

// mstep is a monotonic smoothed step: 0 for t <= 0, 1 for t >= width, and
// a half-cosine ramp in between.
func mstep(t, width float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t >= width:
		return 1
	}
	return (1 - math.Cos(math.Pi*t/width)) / 2
}

// trapPotential builds the static circular-trap profile: a steep smoothed
// wall near the box edge when the cylinder option is on, zero otherwise.
func (s *State) trapPotential() [][]float64 {
	v := make([][]float64, s.grid.Nx)
	for i := range v {
		v[i] = make([]float64, s.grid.Ny)
	}
	if !s.params.Cylinder {
		return v
	}
	for i, x := range s.grid.X {
		rx := 2 * x / s.grid.Lx
		for j, y := range s.grid.Y {
			ry := 2 * y / s.grid.Ly
			v[i][j] = trapHeightMu * s.mu * mstep(rx*rx+ry*ry-trapEdge, trapWidth)
		}
	}
	return v
}

// externalPotential returns the full external potential: static trap plus
// the movable finger well, a Gaussian centered on the finger's actual
// position with displaced coordinates wrapped into the periodic box.
func (s *State) externalPotential() [][]float64 {
	x0, y0 := real(s.finger.Pos), imag(s.finger.Pos)
	r0 := s.params.TrapRadius
	amp := s.params.FingerStrength * s.mu

	v := make([][]float64, s.grid.Nx)
	for i, x := range s.grid.X {
		v[i] = make([]float64, s.grid.Ny)
		dx := wrapCoord(x-x0, s.grid.Lx)
		for j, y := range s.grid.Y {
			dy := wrapCoord(y-y0, s.grid.Ly)
			r2 := dx*dx + dy*dy
			v[i][j] = s.vTrap[i][j] + amp*math.Exp(-r2/(2*r0*r0))
		}
	}
	return v
}
