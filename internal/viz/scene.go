package viz

import (
	"math"

	"github.com/san-kum/fluidballs/internal/dynamo"
)

// Style selects how balls are drawn.
type Style int

const (
	Filled Style = iota
	Outlined
)

func (s Style) String() string {
	if s == Outlined {
		return "outlined"
	}
	return "filled"
}

// Toggle returns the other style.
func (s Style) Toggle() Style {
	if s == Filled {
		return Outlined
	}
	return Filled
}

// Viewport maps world coordinates onto canvas dots, preserving aspect.
type Viewport struct {
	Scale            float64
	OffsetX, OffsetY int
}

// Fit returns the largest viewport that shows a width x height arena on c.
func Fit(c *Canvas, width, height float64) Viewport {
	cw, ch := c.Dots()
	scale := math.Min(float64(cw-1)/width, float64(ch-1)/height)
	return Viewport{
		Scale:   scale,
		OffsetX: (cw - 1 - int(width*scale)) / 2,
		OffsetY: (ch - 1 - int(height*scale)) / 2,
	}
}

func (v Viewport) Point(x, y float64) (int, int) {
	return v.OffsetX + int(math.Round(x*v.Scale)), v.OffsetY + int(math.Round(y*v.Scale))
}

func (v Viewport) Length(l float64) int {
	return int(math.Round(l * v.Scale))
}

// DrawScene clears c and draws the arena outline and every ball in order.
func DrawScene(c *Canvas, width, height float64, bodies []dynamo.Body, style Style) {
	c.Clear()
	vp := Fit(c, width, height)

	x1, y1 := vp.Point(width, height)
	c.DrawRect(vp.OffsetX, vp.OffsetY, x1, y1)

	for _, b := range bodies {
		px, py := vp.Point(b.X, b.Y)
		r := vp.Length(b.Radius)
		if style == Outlined {
			c.DrawCircle(px, py, r)
		} else {
			c.FillCircle(px, py, r)
		}
	}
}
