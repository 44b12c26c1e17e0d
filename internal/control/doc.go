// Package control provides the acceleration drivers that feed the world.
//
// Drivers implement [dynamo.Controller] and are called between ticks, never
// during one:
//
//   - [Cycle]: scripted gravity that rotates down, right, up, left, calm
//   - [Tilt]: acceleration from a tilt [Sensor]; failures keep the previous value
//   - [Switch]: flips between a scripted and a sensor driver at runtime
//   - [Constant]: a fixed vector
//
// # Usage
//
//	drv := control.NewSwitch(control.NewCycle(120, 0.2), control.NewTilt(sensor, 0.1, nil))
//	sim := dynamo.New(world, drv)
//	drv.Toggle() // host input between ticks
package control
