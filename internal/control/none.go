package control

import "github.com/san-kum/fluidballs/internal/dynamo"

// Constant always returns the same acceleration.
type Constant struct {
	a dynamo.Vec2
}

func NewConstant(ax, ay float64) *Constant {
	return &Constant{a: dynamo.Vec2{X: ax, Y: ay}}
}

func (c *Constant) Compute(tick int, prev dynamo.Vec2) dynamo.Vec2 {
	return c.a
}
