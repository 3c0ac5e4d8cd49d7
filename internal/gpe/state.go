package gpe

import (
	"math"
	"math/cmplx"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/quench-lab/superfluid/internal/compute"
)

// Mode selects between imaginary-time cooling, used for ground-state
// preparation, and driven real-time evolution. Both modes run identical
// propagator code and differ only in the complex phase coefficient.
type Mode int

const (
	ModeCooling Mode = iota
	ModeRealTime
)

// coolingClockStart parks the clock far in the past during ground-state
// preparation so that t >= 0 cleanly marks driven evolution (the test
// finger trajectory keys off it).
const coolingClockStart = -10000.0

// Params collects the recognized construction options. DefaultParams
// matches the reference parameter set.
type Params struct {
	Nx, Ny int
	Dx     float64

	HealingLength  float64
	TrapRadius     float64 // finger well radius r0
	FingerStrength float64 // finger well height as a fraction of mu

	CoolingPhase complex128
	CoolingSteps int
	DtScale      float64

	SOC         bool
	SOCDetuning float64
	SOCCoupling float64

	Winding  int
	Cylinder bool

	TestFinger  bool
	TracerCount int
	Seed        int64
}

func DefaultParams() Params {
	return Params{
		Nx: 32, Ny: 32, Dx: 1.0,
		HealingLength:  10.0,
		TrapRadius:     10.0,
		FingerStrength: 0.5,
		CoolingPhase:   complex(1, 0.01),
		CoolingSteps:   100,
		DtScale:        0.1,
		SOCDetuning:    0.05,
		SOCCoupling:    0.5,
		Winding:        10,
		Cylinder:       true,
		TracerCount:    1000,
		Seed:           1,
	}
}

// State is the central mutable simulation entity: the wavefunction and
// everything needed to advance it. It is driven forward exclusively by
// Step and provides no internal synchronization; callers that mix Step
// with snapshot reads must serialize them.
type State struct {
	params  Params
	grid    *Grid
	backend compute.Backend

	g, hbar, m float64
	n0, mu     float64
	soundSpeed float64

	psi   [][]complex128
	kin   [][]float64 // kinetic operator in momentum space, immutable
	vTrap [][]float64 // static trap profile, immutable

	particleN float64 // conserved particle number, sum of |psi|^2

	t, dt float64
	mode  Mode

	finger Finger
	target complex128

	rng     *rand.Rand
	tracers []complex128
	vTrace  [][]complex128 // tracer velocity field, vx + i*vy per cell
}

// NewState constructs a simulation session: grid and operators, a uniform
// condensate, an imaginary-time cooling phase to reach the ground state,
// the optional winding-number phase imprint, and the tracer ensemble.
func NewState(p Params, backend compute.Backend) (*State, error) {
	if p.HealingLength <= 0 {
		return nil, ErrHealingLength
	}
	if p.DtScale <= 0 {
		return nil, ErrTimeStep
	}
	if p.TracerCount < 0 {
		return nil, ErrTracerCount
	}
	grid, err := NewGrid(p.Nx, p.Ny, p.Dx)
	if err != nil {
		return nil, err
	}

	s := &State{
		params:  p,
		grid:    grid,
		backend: backend,
		g:       1, hbar: 1, m: 1,
		rng: rand.New(rand.NewSource(p.Seed)),
	}

	var soc *Dispersion
	var kR float64
	if p.SOC {
		soc = &Dispersion{D: p.SOCDetuning, W: p.SOCCoupling}
		kR = 1 / p.TrapRadius
	}
	s.kin = KineticOperator(grid, s.hbar, s.m, soc, kR)

	s.n0 = s.hbar * s.hbar / (2 * p.HealingLength * p.HealingLength * s.g)
	s.mu = s.g * s.n0
	s.soundSpeed = math.Sqrt(s.mu / s.m)

	amp := complex(math.Sqrt(s.n0), 0)
	s.psi = make([][]complex128, grid.Nx)
	for i := range s.psi {
		s.psi[i] = make([]complex128, grid.Ny)
		for j := range s.psi[i] {
			s.psi[i][j] = amp
		}
	}
	s.vTrap = s.trapPotential()
	s.particleN = s.Norm()

	s.finger = Finger{Spring: fingerSpring, Damping: fingerDamping}
	s.dt = p.DtScale * s.timeScale()

	s.mode = ModeCooling
	s.t = coolingClockStart
	s.Step(p.CoolingSteps)
	if p.Cylinder {
		s.imprintWinding(p.Winding)
	}
	s.t = 0
	s.mode = ModeRealTime

	s.tracers = s.sampleTracers(p.TracerCount)
	return s, nil
}

// phase is the complex coefficient multiplying every propagator exponent.
// Cooling substitutes a purely imaginary phase so the same propagators
// damp toward the ground state instead of evolving unitarily.
func (s *State) phase() complex128 {
	c := s.params.CoolingPhase
	if s.mode == ModeCooling {
		c = complex(0, 1)
	}
	return -1i / complex(s.hbar, 0) / c
}

// timeScale is hbar over the largest kinetic eigenvalue, the shortest
// timescale the spectral propagator has to resolve.
func (s *State) timeScale() float64 {
	kMax := 0.0
	for _, row := range s.kin {
		kMax = math.Max(kMax, floats.Max(row))
	}
	return s.hbar / kMax
}

// imprintWinding multiplies the wavefunction by exp(i*w*theta), seeding a
// persistent current of the given winding number around the cylinder.
func (s *State) imprintWinding(w int) {
	for i, x := range s.grid.X {
		for j, y := range s.grid.Y {
			s.psi[i][j] *= cmplx.Exp(complex(0, float64(w)*math.Atan2(y, x)))
		}
	}
}

// Density returns a fresh copy of |psi|^2 over the grid.
func (s *State) Density() [][]float64 {
	n := make([][]float64, s.grid.Nx)
	for i, row := range s.psi {
		n[i] = make([]float64, s.grid.Ny)
		for j, p := range row {
			n[i][j] = real(p)*real(p) + imag(p)*imag(p)
		}
	}
	return n
}

// Norm is the current total density sum; it should track ParticleNumber
// to within floating-point tolerance.
func (s *State) Norm() float64 {
	total := 0.0
	for _, row := range s.psi {
		for _, p := range row {
			total += real(p)*real(p) + imag(p)*imag(p)
		}
	}
	return total
}

// ParticleNumber is the conserved target particle number recorded at
// construction.
func (s *State) ParticleNumber() float64 { return s.particleN }

// Grid returns the immutable simulation grid.
func (s *State) Grid() *Grid { return s.grid }

// Time returns the simulation clock.
func (s *State) Time() float64 { return s.t }

// Dt returns the fixed time step.
func (s *State) Dt() float64 { return s.dt }

// Mu returns the chemical potential baseline.
func (s *State) Mu() float64 { return s.mu }

// FingerPosition returns the current position of the finger potential.
func (s *State) FingerPosition() complex128 { return s.finger.Pos }

// FingerVelocity returns the current velocity of the finger potential.
func (s *State) FingerVelocity() complex128 { return s.finger.Vel }

// Target returns the point the finger is currently steered toward.
func (s *State) Target() complex128 { return s.fingerTarget() }

// SetTarget steers the finger potential toward (x, y). In test-finger
// mode the built-in trajectory keeps overriding it.
func (s *State) SetTarget(x, y float64) {
	s.target = complex(x, y)
}

// TracerPositions returns a copy of the tracer particle positions.
func (s *State) TracerPositions() []complex128 {
	out := make([]complex128, len(s.tracers))
	copy(out, s.tracers)
	return out
}

func meanDensity(n [][]float64) float64 {
	total := 0.0
	cells := 0
	for _, row := range n {
		total += floats.Sum(row)
		cells += len(row)
	}
	return total / float64(cells)
}
