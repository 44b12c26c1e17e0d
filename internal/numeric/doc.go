// Package numeric provides the scalar arithmetic backends the ball kernel is
// generic over.
//
// The kernel is written once against [Arith] and instantiated with either:
//
//   - [Float]: IEEE float64, the canonical backend
//   - [Fixed]: Q-format scaled integers (Q10, Q20) for targets without an FPU
//
// Every product of two fixed values is rescaled by dividing out one scale
// factor, and every quotient pre-multiplies the dividend by it, so both
// backends evaluate the same formulas.
package numeric
