package gpe

// sampleTracers draws count grid cells by rejection sampling against the
// current density, so the initial tracer distribution follows |psi|^2.
// The sequence is deterministic for a fixed seed.
func (s *State) sampleTracers(count int) []complex128 {
	if count <= 0 {
		return nil
	}
	n := s.Density()
	nMax := 0.0
	for _, row := range n {
		for _, v := range row {
			if v > nMax {
				nMax = v
			}
		}
	}

	out := make([]complex128, 0, count)
	for len(out) < count {
		ix := s.rng.Intn(s.grid.Nx)
		iy := s.rng.Intn(s.grid.Ny)
		if s.rng.Float64()*nMax <= n[ix][iy] {
			out = append(out, complex(s.grid.X[ix], s.grid.Y[iy]))
		}
	}
	return out
}

// refreshTracerVelocity recomputes the probability-current velocity field
// v = Re(IFFT(hbar*k*FFT(psi))/psi)/m per axis via spectral
// differentiation. Cells where the wavefunction underflows to zero get
// zero velocity rather than dividing by it; the condensate density is
// strictly positive by construction everywhere tracers live.
func (s *State) refreshTracerVelocity() {
	psiK := s.backend.FFT2(s.psi)

	gradX := make([][]complex128, s.grid.Nx)
	gradY := make([][]complex128, s.grid.Nx)
	for i := range psiK {
		gradX[i] = make([]complex128, s.grid.Ny)
		gradY[i] = make([]complex128, s.grid.Ny)
		px := complex(s.hbar*s.grid.Kx[i], 0)
		for j := range psiK[i] {
			gradX[i][j] = px * psiK[i][j]
			gradY[i][j] = complex(s.hbar*s.grid.Ky[j], 0) * psiK[i][j]
		}
	}
	fx := s.backend.IFFT2(gradX)
	fy := s.backend.IFFT2(gradY)

	if s.vTrace == nil {
		s.vTrace = make([][]complex128, s.grid.Nx)
		for i := range s.vTrace {
			s.vTrace[i] = make([]complex128, s.grid.Ny)
		}
	}
	for i, row := range s.psi {
		for j, p := range row {
			if p == 0 {
				s.vTrace[i][j] = 0
				continue
			}
			vx := real(fx[i][j]/p) / s.m
			vy := real(fy[i][j]/p) / s.m
			s.vTrace[i][j] = complex(vx, vy)
		}
	}
}

// advanceTracers moves every tracer by dt using the velocity of its
// nearest grid cell. No interpolation between cells: nearest-cell
// sampling is a deliberate accuracy/throughput tradeoff.
func (s *State) advanceTracers(dt float64) {
	for k, pos := range s.tracers {
		ix, iy := s.grid.NearestIndex(pos)
		s.tracers[k] = pos + complex(dt, 0)*s.vTrace[ix][iy]
	}
}
