// Package compute abstracts the numerical primitives behind the
// evolution engine: 2D spectral transforms and vectorized propagator
// exponents. [AutoSelect] picks the fastest available [Backend];
// alternatives can be injected for testing or benchmarking.
package compute
