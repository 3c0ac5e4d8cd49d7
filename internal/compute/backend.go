package compute

// Backend supplies the numerical primitives the evolution engine treats
// as black-box services: 2D spectral transforms and vectorized evaluation
// of propagator exponents. Implementations must be numerically
// equivalent; they may only differ in speed.
type Backend interface {
	Name() string
	Available() bool

	// FFT2 and IFFT2 are the forward and inverse 2D complex transforms.
	// IFFT2 carries the 1/N normalization, so IFFT2(FFT2(x)) == x up to
	// floating-point tolerance.
	FFT2(src [][]complex128) [][]complex128
	IFFT2(src [][]complex128) [][]complex128

	// ExpMul computes dst = exp(coeff*field) * src elementwise. dst and
	// src may alias.
	ExpMul(dst, src [][]complex128, coeff complex128, field [][]float64)

	Cleanup()
}

var activeBackend Backend

func init() {
	activeBackend = AutoSelect()
}

// SetBackend replaces the process-wide default backend.
func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

// GetBackend returns the process-wide default backend.
func GetBackend() Backend {
	return activeBackend
}

// AutoSelect picks the best available backend.
func AutoSelect() Backend {
	p := NewParallel()
	if p.Available() {
		return p
	}
	return NewSerial()
}
