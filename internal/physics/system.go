package physics

import (
	"fmt"

	"github.com/san-kum/fluidballs/internal/dynamo"
	"github.com/san-kum/fluidballs/internal/numeric"
	"github.com/san-kum/fluidballs/internal/rng"
)

// NewSystem builds a world on the named numeric backend and populates it
// from src.
func NewSystem(backend string, p Params, src *rng.GameRand) (dynamo.System, error) {
	switch backend {
	case "", numeric.BackendFloat:
		return newPopulated[float64](numeric.Float{}, p, src)
	case numeric.BackendQ10:
		return newPopulated[int64](numeric.Q10, p, src)
	case numeric.BackendQ20:
		return newPopulated[int64](numeric.Q20, p, src)
	}
	return nil, fmt.Errorf("%w: %q (available: %v)", dynamo.ErrUnknownBackend, backend, numeric.Backends())
}

func newPopulated[T any](ops numeric.Arith[T], p Params, src *rng.GameRand) (dynamo.System, error) {
	w, err := NewWorld(ops, p)
	if err != nil {
		return nil, err
	}
	w.Populate(src)
	return w, nil
}
