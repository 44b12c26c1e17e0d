// Package physics implements the ball kernel: a fixed population of rigid
// circles in a rectangular arena.
//
// [World] holds the balls as parallel slices and is generic over a
// [numeric.Arith] backend, so the float64 and Q-format fixed-point variants
// share one algorithm. Each tick [World.Step] runs, in order:
//
//   - [World.Collide]: single forward sweep over all pairs a<b
//   - [World.Confine]: hard clamp into the arena with damped bounce
//   - [World.Integrate]: v += a; p += v with the tick as unit timestep
//
// [NewSystem] selects a backend by name and returns a populated world as a
// [dynamo.System].
//
// # Preconditions
//
// The kernel never returns errors. NaN components or non-positive radii are
// precondition violations; call [World.Validate] (the simulator does when
// ValidateState is set) to detect them.
package physics
