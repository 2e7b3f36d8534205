// Package viz provides a terminal front end for the triple pendulum.
//
// The package implements a live TUI using the Bubble Tea framework:
//
//   - [Model]: steps a [sim.Simulation] once per frame and draws it
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - Theme selection with 3 built-in color schemes
//
// # Key Bindings
//
//	1/2/3 - Euler, Heun, Runge-Kutta
//	I     - Reset to the canonical state and clear the locus
//	L     - Toggle the locus
//	Space - Pause/Resume simulation
//	T     - Cycle color themes
//	Q     - Quit
//
// Each frame advances the simulation by ten substeps of 1.6ms.
package viz
