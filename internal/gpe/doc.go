// Package gpe evolves a two-dimensional Gross-Pitaevskii wavefunction
// with a symmetric split-operator spectral method.
//
// The central type is [State], which owns the wavefunction, the
// precomputed kinetic operator, the steerable finger potential, and the
// tracer particle ensemble:
//
//   - [NewState]: builds the grid and operators, cools to the ground
//     state in imaginary time, optionally imprints a persistent current,
//     and samples tracers from the density
//   - [State.Step]: advances n sub-steps of real-time evolution
//   - [State.SetTarget]: steers the finger potential
//   - [Dispersion]: lower/upper band structure under synthetic
//     spin-orbit coupling, with analytic derivatives
//
// Units are dimensionless with g = hbar = m = 1; densities are fixed by
// the healing length.
//
// # Thread Safety
//
// State is NOT thread-safe. Callers that interleave Step with snapshot
// reads or SetTarget must serialize them, as internal/server does with
// one mutex.
package gpe
