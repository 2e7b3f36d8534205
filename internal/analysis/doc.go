// Package analysis provides chaos diagnostics for the triple pendulum.
//
//   - [LyapunovExponent]: largest Lyapunov exponent via renormalized
//     trajectory separation
//   - [PoincareSection]: states where the first link swings through the
//     bottom
//   - [Spectrum]: power spectrum and dominant frequency of a sampled signal
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, err := analysis.LyapunovExponent(sys, integ, x0, dt, steps, 1e-8)
//	if err == nil && lambda > 0 {
//	    // System is chaotic
//	}
package analysis
