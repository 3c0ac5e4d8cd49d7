package gpe

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// applyExpK multiplies the wavefunction by exp(phase*dt*factor*K) in the
// spectral representation.
func (s *State) applyExpK(dt, factor float64) {
	coeff := s.phase() * complex(dt*factor, 0)
	psiK := s.backend.FFT2(s.psi)
	s.backend.ExpMul(psiK, psiK, coeff, s.kin)
	s.psi = s.backend.IFFT2(psiK)
}

// applyExpV multiplies the wavefunction by exp(phase*dt*factor*(Vext +
// g*n - mu)) in real space, then renormalizes to the conserved particle
// number. Renormalizing every potential sub-step bounds the density drift
// from the finite-step nonlinearity and the imaginary-time damping.
func (s *State) applyExpV(dt, factor float64, density [][]float64) {
	v := s.externalPotential()
	total := 0.0
	for i, row := range density {
		total += floats.Sum(row)
		for j, n := range row {
			v[i][j] += s.g*n - s.mu
		}
	}

	coeff := s.phase() * complex(dt*factor, 0)
	s.backend.ExpMul(s.psi, s.psi, coeff, v)

	scale := complex(math.Sqrt(s.particleN/total), 0)
	for _, row := range s.psi {
		for j := range row {
			row[j] *= scale
		}
	}
}

// Step advances the simulation by n full sub-steps of the symmetric
// split-operator scheme. Each sub-step advects the tracer particles,
// moves the finger potential, applies the potential propagator with
// renormalization, and applies the kinetic propagator. The trailing
// factor=-0.5 kinetic step (with the matching dt/2 clock retreat) cancels
// the leading half step across back-to-back calls, so repeated calls
// compose into one consistent Strang splitting.
func (s *State) Step(n int) {
	dt := s.dt
	s.applyExpK(dt, 0.5)
	s.t += dt / 2
	for i := 0; i < n; i++ {
		if len(s.tracers) > 0 {
			s.refreshTracerVelocity()
			s.advanceTracers(dt)
		}

		density := s.Density()
		s.finger.Advance(dt, s.fingerTarget(), s.maxFingerSpeed(density), s.grid)

		s.applyExpV(dt, 1.0, density)
		s.applyExpK(dt, 1.0)
		s.t += dt
	}
	s.applyExpK(dt, -0.5)
	s.t -= dt / 2
}
