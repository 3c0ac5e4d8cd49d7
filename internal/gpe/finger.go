package gpe

import (
	"math"
	"math/cmplx"
)

// Default oscillator coefficients for the steered finger potential.
const (
	fingerSpring  = 10.0
	fingerDamping = 4.0
)

// Built-in test trajectory: a circle of fixed radius traversed once per
// 2*pi*testFingerPeriod time units.
const (
	testFingerRadius = 3.0
	testFingerPeriod = 5.0
)

// Finger is the damped-harmonic-oscillator state of the movable probe
// potential. Position and velocity are complex scalars encoding (x, y).
type Finger struct {
	Pos, Vel complex128
	Spring   float64
	Damping  float64
}

// Advance integrates one step toward target with semi-implicit Euler:
// position moves with the old velocity, the acceleration is evaluated at
// the new position, then the velocity is updated, clamped to vMax, and
// the position wrapped into the periodic box.
func (f *Finger) Advance(dt float64, target complex128, vMax float64, g *Grid) {
	f.Pos += complex(dt, 0) * f.Vel
	acc := complex(-f.Spring, 0)*(f.Pos-target) - complex(f.Damping, 0)*f.Vel
	f.Vel += complex(dt, 0) * acc
	if speed := cmplx.Abs(f.Vel); speed > vMax {
		f.Vel *= complex(vMax/speed, 0)
	}
	f.Pos = g.Wrap(f.Pos)
}

// fingerTarget is the point the finger oscillator is driven toward. In
// test mode a built-in circular trajectory overrides the steered target,
// so the engine can exercise finger motion without a client.
func (s *State) fingerTarget() complex128 {
	if s.params.TestFinger {
		if s.t >= 0 {
			return testFingerRadius * cmplx.Exp(complex(0, s.t/testFingerPeriod))
		}
		return complex(testFingerRadius, 0)
	}
	return s.target
}

// maxFingerSpeed estimates the local sound speed from the mean density,
// the physical bound on how fast the finger may move.
func (s *State) maxFingerSpeed(density [][]float64) float64 {
	return math.Sqrt(s.g * meanDensity(density) / s.m)
}
