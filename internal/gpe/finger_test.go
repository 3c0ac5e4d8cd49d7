package gpe

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestFingerConvergesToTarget(t *testing.T) {
	g, _ := NewGrid(32, 32, 1)
	f := Finger{Spring: fingerSpring, Damping: fingerDamping}
	target := complex(1, -0.5)

	for i := 0; i < 5000; i++ {
		f.Advance(0.01, target, 1e9, g)
	}
	if d := cmplx.Abs(f.Pos - target); d > 1e-3 {
		t.Errorf("finger settled %g away from target", d)
	}
	if v := cmplx.Abs(f.Vel); v > 1e-3 {
		t.Errorf("residual finger velocity %g", v)
	}
}

func TestFingerSpeedClamp(t *testing.T) {
	g, _ := NewGrid(32, 32, 1)
	f := Finger{Spring: fingerSpring, Damping: fingerDamping}
	const vMax = 0.05

	for i := 0; i < 100; i++ {
		f.Advance(0.1, complex(10, 10), vMax, g)
		if v := cmplx.Abs(f.Vel); v > vMax+1e-12 {
			t.Fatalf("speed %g exceeds clamp %g at step %d", v, vMax, i)
		}
	}
}

func TestFingerWrapsAroundBox(t *testing.T) {
	g, _ := NewGrid(8, 8, 1)
	f := Finger{Pos: complex(3.9, 0), Vel: complex(2, 0), Spring: 0, Damping: 0}

	f.Advance(0.1, f.Pos, 1e9, g)
	if x := real(f.Pos); x > 0 {
		t.Errorf("expected wrap to negative side, got x=%g", x)
	}
}

func TestFingerTestTrajectory(t *testing.T) {
	p := testParams()
	p.TestFinger = true
	p.TracerCount = 0
	s := newTestState(t, p)

	// During cooling the test target parks on the positive x axis; once
	// the clock is running it traces a circle of fixed radius.
	if s.Target() != complex(testFingerRadius, 0) {
		t.Errorf("initial test target: got %v", s.Target())
	}
	s.Step(10)
	if r := cmplx.Abs(s.Target()); math.Abs(r-testFingerRadius) > 1e-12 {
		t.Errorf("test target radius: got %g, want %g", r, testFingerRadius)
	}

	// Steering is ignored while the built-in trajectory is active.
	s.SetTarget(-1, -1)
	if s.Target() == complex(-1, -1) {
		t.Error("test trajectory should override the steered target")
	}
}
