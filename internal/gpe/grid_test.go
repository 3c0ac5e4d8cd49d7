package gpe

import (
	"errors"
	"math"
	"testing"
)

func TestGridAxisCentered(t *testing.T) {
	g, err := NewGrid(8, 8, 0.5)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	if g.Lx != 4.0 || g.Ly != 4.0 {
		t.Fatalf("expected box 4x4, got %gx%g", g.Lx, g.Ly)
	}
	if g.X[0] != -2.0 {
		t.Errorf("expected first coordinate -L/2, got %g", g.X[0])
	}
	if math.Abs(g.X[7]-1.5) > 1e-12 {
		t.Errorf("expected last coordinate L/2-dx, got %g", g.X[7])
	}
	for i := 1; i < len(g.X); i++ {
		if math.Abs(g.X[i]-g.X[i-1]-0.5) > 1e-12 {
			t.Fatalf("non-uniform spacing at %d: %g", i, g.X[i]-g.X[i-1])
		}
	}
}

func TestGridWaveNumbers(t *testing.T) {
	g, err := NewGrid(8, 8, 0.5)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	scale := 2 * math.Pi / g.Lx
	want := []float64{0, 1, 2, 3, -4, -3, -2, -1}
	for i, f := range want {
		if math.Abs(g.Kx[i]-f*scale) > 1e-12 {
			t.Errorf("Kx[%d]: got %g, want %g", i, g.Kx[i], f*scale)
		}
	}
}

func TestGridValidation(t *testing.T) {
	if _, err := NewGrid(0, 8, 1); !errors.Is(err, ErrGridSize) {
		t.Errorf("expected ErrGridSize, got %v", err)
	}
	if _, err := NewGrid(8, 8, 0); !errors.Is(err, ErrGridSpacing) {
		t.Errorf("expected ErrGridSpacing, got %v", err)
	}
}

func TestGridWrap(t *testing.T) {
	g, _ := NewGrid(8, 8, 1)

	z := g.Wrap(complex(4.5, -4.5))
	if math.Abs(real(z)-0.5) > 1e-12 || math.Abs(imag(z)+0.5) > 1e-12 {
		t.Errorf("wrap: got %v, want (0.5,-0.5)", z)
	}

	// The box is half-open: L/2 wraps to -L/2.
	z = g.Wrap(complex(4, 0))
	if real(z) != -4 {
		t.Errorf("wrap at boundary: got %g, want -4", real(z))
	}
}

func TestGridNearestIndex(t *testing.T) {
	g, _ := NewGrid(8, 8, 1)

	ix, iy := g.NearestIndex(complex(g.X[3], g.Y[5]))
	if ix != 3 || iy != 5 {
		t.Errorf("exact cell: got (%d,%d), want (3,5)", ix, iy)
	}

	// Just below L/2 rounds around to cell 0.
	ix, _ = g.NearestIndex(complex(3.9, 0))
	if ix != 0 {
		t.Errorf("periodic rounding: got %d, want 0", ix)
	}
}

func TestKineticOperatorQuadratic(t *testing.T) {
	g, _ := NewGrid(8, 8, 1)
	k := KineticOperator(g, 1, 1, nil, 0)

	if k[0][0] != 0 {
		t.Errorf("expected zero kinetic energy at k=0, got %g", k[0][0])
	}
	for i := range g.Kx {
		for j := range g.Ky {
			want := (g.Kx[i]*g.Kx[i] + g.Ky[j]*g.Ky[j]) / 2
			if math.Abs(k[i][j]-want) > 1e-12 {
				t.Fatalf("K[%d][%d]: got %g, want %g", i, j, k[i][j], want)
			}
		}
	}
}

func TestKineticOperatorSOC(t *testing.T) {
	g, _ := NewGrid(16, 16, 1)
	soc := &Dispersion{D: 0.05, W: 0.5}
	k := KineticOperator(g, 1, 1, soc, 0.1)

	// The lower branch is shifted so its minimum sits at zero energy; the
	// operator must never dip below it.
	for i := range k {
		for j := range k[i] {
			if k[i][j] < -1e-9 {
				t.Fatalf("negative kinetic energy %g at [%d][%d]", k[i][j], i, j)
			}
		}
	}
	if math.Abs(k[0][0]) > 1e-9 {
		t.Errorf("expected shifted minimum at kx=0, got %g", k[0][0])
	}
}
