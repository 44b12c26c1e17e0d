// Package viz renders balls in the terminal.
//
// The package implements a live view using the Bubble Tea framework:
//
//   - [Model]: the live view, stepping a [dynamo.Simulator] at 30 frames a second
//   - [Canvas]: Braille-based dot canvas with line and circle rasterisers
//   - [DrawScene]: arena outline plus filled or outlined balls
//
// # Key Bindings
//
//	Space  - Pause/Resume simulation
//	R      - Reset to the seeded initial state
//	G      - Flip the gravity source (script/tilt)
//	O      - Toggle filled/outlined balls
//	Arrows - Tilt while the sensor source is active
//	T      - Cycle color themes
//	?      - Show help overlay
package viz
