package compute

import (
	"math/cmplx"
	"runtime"
	"sync"

	"github.com/mjibson/go-dsp/fft"
)

// dsp provides the spectral transforms shared by the CPU backends.
type dsp struct{}

func (dsp) FFT2(src [][]complex128) [][]complex128  { return fft.FFT2(src) }
func (dsp) IFFT2(src [][]complex128) [][]complex128 { return fft.IFFT2(src) }
func (dsp) Cleanup()                                {}

// Serial evaluates propagator exponents in a single goroutine.
type Serial struct{ dsp }

func NewSerial() *Serial { return &Serial{} }

func (*Serial) Name() string    { return "serial" }
func (*Serial) Available() bool { return true }

func (*Serial) ExpMul(dst, src [][]complex128, coeff complex128, field [][]float64) {
	expMulRows(dst, src, coeff, field, 0, len(src))
}

// Parallel chunks the grid rows across worker goroutines. Below the
// cutoff the goroutine overhead beats the arithmetic, so small grids run
// serially.
type Parallel struct {
	dsp
	workers int
}

const parallelCutoff = 64

func NewParallel() *Parallel {
	return &Parallel{workers: runtime.NumCPU()}
}

func (*Parallel) Name() string      { return "parallel" }
func (p *Parallel) Available() bool { return p.workers > 1 }

func (p *Parallel) ExpMul(dst, src [][]complex128, coeff complex128, field [][]float64) {
	rows := len(src)
	if rows < parallelCutoff {
		expMulRows(dst, src, coeff, field, 0, rows)
		return
	}

	var wg sync.WaitGroup
	chunk := (rows + p.workers - 1) / p.workers
	for w := 0; w < p.workers; w++ {
		start := w * chunk
		if start >= rows {
			break
		}
		end := start + chunk
		if end > rows {
			end = rows
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			expMulRows(dst, src, coeff, field, start, end)
		}(start, end)
	}
	wg.Wait()
}

func expMulRows(dst, src [][]complex128, coeff complex128, field [][]float64, start, end int) {
	for i := start; i < end; i++ {
		for j, v := range src[i] {
			dst[i][j] = cmplx.Exp(coeff*complex(field[i][j], 0)) * v
		}
	}
}
