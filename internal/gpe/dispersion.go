package gpe

import (
	"fmt"
	"math"
)

// Dispersion computes properties of the two-band dispersion produced by
// synthetic spin-orbit coupling. Everything is dimensionless: momenta in
// units of the recoil momentum, detuning D = delta/4E_R, coupling
// W = Omega/4E_R, and energies in units of 2E_R.
type Dispersion struct {
	D float64 // detuning
	W float64 // coupling strength
}

// newtonIters is enough for the parameter ranges used here; the lower
// branch is smooth and well conditioned near its minimum, so the solver
// runs a fixed iteration count with no convergence check.
const newtonIters = 5

// Bands returns the (lower, upper) band energies at momentum k for
// order 0, or the corresponding derivative for orders 1 and 2.
func (d Dispersion) Bands(k float64, order int) (lower, upper float64, err error) {
	den := math.Sqrt((k-d.D)*(k-d.D) + d.W*d.W)
	switch order {
	case 0:
		e := (k*k + 1) / 2
		return e - den, e + den, nil
	case 1:
		t := (k - d.D) / den
		return k - t, k + t, nil
	case 2:
		t := d.W * d.W / (den * den * den)
		return 1 - t, 1 + t, nil
	default:
		return 0, 0, fmt.Errorf("%w: got %d, want 0, 1 or 2", ErrDerivativeOrder, order)
	}
}

// Lower returns the lower-band energy at momentum k.
func (d Dispersion) Lower(k float64) float64 {
	lo, _, _ := d.Bands(k, 0)
	return lo
}

// MinK locates the momentum of the lower-band minimum by Newton iteration
// seeded at -sign(D)/2, the side the minimum sits on.
func (d Dispersion) MinK() float64 {
	k := -sign(d.D) / 2
	for i := 0; i < newtonIters; i++ {
		d1, _, _ := d.Bands(k, 1)
		d2, _, _ := d.Bands(k, 2)
		k -= d1 / d2
	}
	return k
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
