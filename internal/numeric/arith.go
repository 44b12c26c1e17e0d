package numeric

import (
	"fmt"
	"math"
)

// Backend names accepted by config and the CLI.
const (
	BackendFloat = "float"
	BackendQ10   = "q10"
	BackendQ20   = "q20"
)

// Backends lists every selectable backend name.
func Backends() []string {
	return []string{BackendFloat, BackendQ10, BackendQ20}
}

// Arith is the scalar trait the kernel is written against.
type Arith[T any] interface {
	Name() string
	FromFloat(f float64) T
	ToFloat(v T) float64
	Add(a, b T) T
	Sub(a, b T) T
	Mul(a, b T) T
	Div(a, b T) T
	Sqrt(v T) T
	Less(a, b T) bool
	// Epsilon is the smallest positive representable value.
	Epsilon() T
}

// Float is the float64 backend.
type Float struct{}

func (Float) Name() string                { return BackendFloat }
func (Float) FromFloat(f float64) float64 { return f }
func (Float) ToFloat(v float64) float64   { return v }
func (Float) Add(a, b float64) float64    { return a + b }
func (Float) Sub(a, b float64) float64    { return a - b }
func (Float) Mul(a, b float64) float64    { return a * b }
func (Float) Div(a, b float64) float64    { return a / b }
func (Float) Sqrt(v float64) float64      { return math.Sqrt(v) }
func (Float) Less(a, b float64) bool      { return a < b }
func (Float) Epsilon() float64            { return math.SmallestNonzeroFloat64 }

// ParseBackend normalizes a backend name, mapping "" to float.
func ParseBackend(name string) (string, error) {
	switch name {
	case "", BackendFloat:
		return BackendFloat, nil
	case BackendQ10, BackendQ20:
		return name, nil
	}
	return "", fmt.Errorf("unknown numeric backend %q (available: %v)", name, Backends())
}
