// Package dynamo provides the tick loop and core interfaces for the ball
// simulation.
//
// The package defines:
//
//   - [System]: a world that advances one fixed tick per [System.Step]
//   - [Controller]: produces the acceleration the world holds for the next tick
//   - [Metric] and [Observer]: read-only consumers of each tick's bodies
//   - [Simulator]: drives controller, system and observers in strict order
//
// # Example
//
//	sys, _ := physics.NewSystem(numeric.BackendFloat, params, rng.Default())
//	s := dynamo.New(sys, control.NewCycle(120, 0.2))
//	result, _ := s.Run(ctx, cfg)
//
// # Thread Safety
//
// Simulator and System instances are NOT thread-safe. A tick runs to
// completion before observers see the world. For parallel runs use
// [Ensemble], which gives every run its own world.
package dynamo
