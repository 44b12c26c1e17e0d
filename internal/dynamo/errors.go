package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a ball with a NaN or Inf component.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrContextCanceled indicates the simulation was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")

	// ErrUnknownBackend indicates an unsupported numeric backend name.
	ErrUnknownBackend = errors.New("dynamo: unknown numeric backend")
)

// SimulationError wraps an error with the tick it was detected on.
type SimulationError struct {
	Tick    int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("tick %d: %v", e.Tick, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
