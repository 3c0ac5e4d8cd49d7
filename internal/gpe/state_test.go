package gpe

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/quench-lab/superfluid/internal/compute"
)

// testParams is a small, fast configuration shared by the package tests:
// a flat box without the winding imprint so analytic expectations stay
// simple.
func testParams() Params {
	p := DefaultParams()
	p.Nx, p.Ny = 8, 8
	p.CoolingSteps = 20
	p.Cylinder = false
	p.Winding = 0
	p.TracerCount = 50
	return p
}

func newTestState(t *testing.T, p Params) *State {
	t.Helper()
	s, err := NewState(p, compute.NewSerial())
	if err != nil {
		t.Fatalf("NewState failed: %v", err)
	}
	return s
}

func TestNewStateValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Params)
		want   error
	}{
		{"healing length", func(p *Params) { p.HealingLength = 0 }, ErrHealingLength},
		{"dt scale", func(p *Params) { p.DtScale = -1 }, ErrTimeStep},
		{"tracer count", func(p *Params) { p.TracerCount = -1 }, ErrTracerCount},
		{"grid", func(p *Params) { p.Nx = 0 }, ErrGridSize},
	}
	for _, tc := range cases {
		p := testParams()
		tc.mutate(&p)
		if _, err := NewState(p, compute.NewSerial()); !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestStateMassConservation(t *testing.T) {
	s := newTestState(t, testParams())

	n0 := s.ParticleNumber()
	for i := 0; i < 5; i++ {
		s.Step(10)
		drift := math.Abs(s.Norm()/n0 - 1)
		if drift > 1e-3 {
			t.Fatalf("particle number drifted by %g after batch %d", drift, i)
		}
	}
}

func TestStateClockAdvance(t *testing.T) {
	s := newTestState(t, testParams())

	if s.Time() != 0 {
		t.Fatalf("clock not reset after cooling: %g", s.Time())
	}
	s.Step(7)
	want := 7 * s.Dt()
	if math.Abs(s.Time()-want) > 1e-12 {
		t.Errorf("clock: got %g, want %g", s.Time(), want)
	}
}

func TestStateDeterministic(t *testing.T) {
	a := newTestState(t, testParams())
	b := newTestState(t, testParams())
	a.Step(10)
	b.Step(10)

	for i := range a.psi {
		for j := range a.psi[i] {
			if cmplx.Abs(a.psi[i][j]-b.psi[i][j]) > 1e-12 {
				t.Fatalf("wavefunctions diverge at [%d][%d]", i, j)
			}
		}
	}
	ta, tb := a.TracerPositions(), b.TracerPositions()
	for k := range ta {
		if cmplx.Abs(ta[k]-tb[k]) > 1e-12 {
			t.Fatalf("tracers diverge at %d: %v vs %v", k, ta[k], tb[k])
		}
	}
}

func TestStateUniformGroundState(t *testing.T) {
	p := testParams()
	p.FingerStrength = 0
	p.TracerCount = 0
	s := newTestState(t, p)

	// With no trap and no finger the cooled condensate is uniform at n0.
	n := s.Density()
	mean := meanDensity(n)
	if math.Abs(mean/s.n0-1) > 1e-6 {
		t.Errorf("mean density: got %g, want %g", mean, s.n0)
	}
	for i, row := range n {
		for j, v := range row {
			if math.Abs(v/mean-1) > 1e-6 {
				t.Fatalf("density contrast %g at [%d][%d]", v/mean-1, i, j)
			}
		}
	}
}

func TestStateFingerFollowsTarget(t *testing.T) {
	p := testParams()
	p.FingerStrength = 0
	p.TracerCount = 0
	s := newTestState(t, p)

	s.SetTarget(2, 1.5)
	before := cmplx.Abs(s.FingerPosition() - s.Target())
	s.Step(50)
	after := cmplx.Abs(s.FingerPosition() - s.Target())

	if before-after < 1e-3 {
		t.Errorf("finger did not approach target: %g -> %g", before, after)
	}
}

func TestStateFingerSpeedBounded(t *testing.T) {
	p := testParams()
	p.TestFinger = true
	p.TracerCount = 0
	s := newTestState(t, p)

	bound := s.maxFingerSpeed(s.Density())
	for i := 0; i < 20; i++ {
		s.Step(5)
		if speed := cmplx.Abs(s.FingerVelocity()); speed > bound*1.01 {
			t.Fatalf("finger speed %g exceeds sound-speed bound %g", speed, bound)
		}
	}
}

func TestStateWindingImprint(t *testing.T) {
	p := testParams()
	p.Cylinder = true
	p.Winding = 1
	p.TracerCount = 0
	s := newTestState(t, p)

	// The phase must accumulate 2*pi*w around a loop encircling the
	// center. Sample the four cells adjacent to the origin.
	loop := [][2]int{
		{s.grid.Nx/2 + 1, s.grid.Ny / 2},
		{s.grid.Nx / 2, s.grid.Ny/2 + 1},
		{s.grid.Nx/2 - 1, s.grid.Ny / 2},
		{s.grid.Nx / 2, s.grid.Ny/2 - 1},
	}
	total := 0.0
	for k := range loop {
		a := s.psi[loop[k][0]][loop[k][1]]
		b := s.psi[loop[(k+1)%len(loop)][0]][loop[(k+1)%len(loop)][1]]
		d := cmplx.Phase(b) - cmplx.Phase(a)
		for d > math.Pi {
			d -= 2 * math.Pi
		}
		for d < -math.Pi {
			d += 2 * math.Pi
		}
		total += d
	}
	winding := total / (2 * math.Pi)
	if math.Abs(winding-1) > 0.2 {
		t.Errorf("winding number: got %g, want 1", winding)
	}
}
