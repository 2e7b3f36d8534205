// Package dynamo provides the core primitives of the triple pendulum engine.
//
// The package defines the state and parameter types shared by every other
// package, and the interfaces that connect them:
//
//   - [State]: rod angles and angular velocities at an instant
//   - [Delta]: dt-scaled increment produced by one dynamics evaluation
//   - [Params]: fixed rod lengths, masses and gravity
//   - [Method]: selectable integration scheme
//   - [System]: anything that turns a State into a Delta
//   - [Integrator]: combines System evaluations into a single step
//
// # Example
//
//	model, _ := models.NewTriplePendulum(dynamo.DefaultParams(), models.GaussJordan{})
//	integ, _ := integrators.New(dynamo.RungeKutta4)
//	next, err := integ.Step(model, dynamo.CanonicalState(), 0.001)
//
// # Thread Safety
//
// All types in this package are values. Nothing here holds mutable shared
// state, so they may be copied freely between goroutines.
package dynamo
