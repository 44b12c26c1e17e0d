package physics

import (
	"github.com/san-kum/fluidballs/internal/dynamo"
	"github.com/san-kum/fluidballs/internal/rng"
)

// Populate fills every ball once, in index order, drawing radius, x, y and
// (when InitialSpeed > 0) vx, vy from src. No other code consumes src.
func (w *World[T]) Populate(src *rng.GameRand) {
	p := w.params
	maxR := p.MaxRadius
	scale := p.RadiusScale()

	for i := range w.r {
		r := (src.Float(maxR*0.75) + maxR*0.25) * scale
		b := dynamo.Body{
			X:      src.Float(p.Width-2*r) + r,
			Y:      src.Float(p.Height-2*r) + r,
			Radius: r,
		}
		if s := p.InitialSpeed; s > 0 {
			b.VX = src.Float(2*s) - s
			b.VY = src.Float(2*s) - s
		}
		w.Place(i, b)
	}
}
