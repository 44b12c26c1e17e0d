package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/fluidballs/internal/dynamo"
	"github.com/san-kum/fluidballs/internal/numeric"
)

// Params describes a world at creation.
type Params struct {
	Width, Height float64
	Count         int
	MaxRadius     float64
	Restitution   float64
	// RefCount, when positive, scales radii by 1/sqrt(Count/RefCount) so the
	// occupied area stays roughly constant as Count changes.
	RefCount int
	// InitialSpeed, when positive, gives each ball a random velocity in
	// [-InitialSpeed, InitialSpeed) per axis.
	InitialSpeed float64
	Acceleration dynamo.Vec2
}

// RadiusScale is the factor applied to every drawn radius.
func (p Params) RadiusScale() float64 {
	if p.RefCount <= 0 {
		return 1
	}
	return 1 / math.Sqrt(float64(p.Count)/float64(p.RefCount))
}

func (p Params) Validate() error {
	if p.Count <= 0 {
		return fmt.Errorf("%w: ball count must be positive, got %d", dynamo.ErrParameterBounds, p.Count)
	}
	if !(p.Width > 0) || !(p.Height > 0) {
		return fmt.Errorf("%w: arena must be positive, got %gx%g", dynamo.ErrParameterBounds, p.Width, p.Height)
	}
	if !(p.MaxRadius > 0) {
		return fmt.Errorf("%w: max radius must be positive, got %g", dynamo.ErrParameterBounds, p.MaxRadius)
	}
	if !(p.Restitution > 0) || p.Restitution > 1 {
		return fmt.Errorf("%w: restitution must be in (0,1], got %g", dynamo.ErrParameterBounds, p.Restitution)
	}
	if p.InitialSpeed < 0 {
		return fmt.Errorf("%w: initial speed must not be negative, got %g", dynamo.ErrParameterBounds, p.InitialSpeed)
	}
	if d := 2 * p.MaxRadius * p.RadiusScale(); d > p.Width || d > p.Height {
		return fmt.Errorf("%w: ball diameter %g does not fit a %gx%g arena", dynamo.ErrParameterBounds, d, p.Width, p.Height)
	}
	return nil
}

// Mass returns the mass of a ball of radius r: 4/3·π·r³.
func Mass(r float64) float64 {
	return r * r * r * math.Pi * 4 / 3
}

// World is the ball state. Ball i is the column i across the slices.
type World[T any] struct {
	ops    numeric.Arith[T]
	params Params

	width, height T
	accX, accY    T
	e             T

	px, py []T
	vx, vy []T
	r, m   []T

	zero, half, one, two T
}

// NewWorld allocates a world of p.Count balls at the origin with zero radius.
// Call Populate or Place before stepping.
func NewWorld[T any](ops numeric.Arith[T], p Params) (*World[T], error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if r := 0.25 * p.MaxRadius * p.RadiusScale(); !ops.Less(ops.FromFloat(0), ops.FromFloat(Mass(r))) {
		return nil, fmt.Errorf("%w: smallest ball radius %g has no representable mass on %s", dynamo.ErrParameterBounds, r, ops.Name())
	}
	n := p.Count
	return &World[T]{
		ops:    ops,
		params: p,
		width:  ops.FromFloat(p.Width),
		height: ops.FromFloat(p.Height),
		accX:   ops.FromFloat(p.Acceleration.X),
		accY:   ops.FromFloat(p.Acceleration.Y),
		e:      ops.FromFloat(p.Restitution),
		px:     make([]T, n),
		py:     make([]T, n),
		vx:     make([]T, n),
		vy:     make([]T, n),
		r:      make([]T, n),
		m:      make([]T, n),
		zero:   ops.FromFloat(0),
		half:   ops.FromFloat(0.5),
		one:    ops.FromFloat(1),
		two:    ops.FromFloat(2),
	}, nil
}

func (w *World[T]) Params() Params  { return w.params }
func (w *World[T]) Len() int        { return len(w.r) }
func (w *World[T]) Backend() string { return w.ops.Name() }

func (w *World[T]) Bounds() (width, height float64) {
	return w.params.Width, w.params.Height
}

func (w *World[T]) Acceleration() dynamo.Vec2 {
	return dynamo.Vec2{X: w.ops.ToFloat(w.accX), Y: w.ops.ToFloat(w.accY)}
}

func (w *World[T]) SetAcceleration(a dynamo.Vec2) {
	w.accX = w.ops.FromFloat(a.X)
	w.accY = w.ops.FromFloat(a.Y)
}

// Place sets ball i directly, deriving its mass from the stored radius.
// Mass never drops below the backend's smallest positive value.
func (w *World[T]) Place(i int, b dynamo.Body) {
	o := w.ops
	w.px[i], w.py[i] = o.FromFloat(b.X), o.FromFloat(b.Y)
	w.vx[i], w.vy[i] = o.FromFloat(b.VX), o.FromFloat(b.VY)
	w.r[i] = o.FromFloat(b.Radius)
	m := o.FromFloat(Mass(o.ToFloat(w.r[i])))
	if !o.Less(w.zero, m) {
		m = o.Epsilon()
	}
	w.m[i] = m
}

func (w *World[T]) Body(i int) dynamo.Body {
	o := w.ops
	return dynamo.Body{
		X:      o.ToFloat(w.px[i]),
		Y:      o.ToFloat(w.py[i]),
		VX:     o.ToFloat(w.vx[i]),
		VY:     o.ToFloat(w.vy[i]),
		Radius: o.ToFloat(w.r[i]),
		Mass:   o.ToFloat(w.m[i]),
	}
}

func (w *World[T]) Bodies(dst []dynamo.Body) []dynamo.Body {
	dst = dst[:0]
	for i := range w.r {
		dst = append(dst, w.Body(i))
	}
	return dst
}

func (w *World[T]) Validate() error {
	for i := range w.r {
		b := w.Body(i)
		for _, v := range [...]float64{b.X, b.Y, b.VX, b.VY} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("ball %d: %w", i, dynamo.ErrInvalidState)
			}
		}
		if !(b.Radius > 0) || !(b.Mass > 0) {
			return fmt.Errorf("ball %d: %w: radius %g", i, dynamo.ErrParameterBounds, b.Radius)
		}
	}
	return nil
}
