package metrics

import "github.com/san-kum/fluidballs/internal/dynamo"

// Containment is the fraction of ticks on which every ball centre stayed
// inside the arena. Integration may push a rim past the wall for one tick,
// so only escaped centres count as violations.
type Containment struct {
	name          string
	width, height float64
	violations    int
	samples       int
}

func NewContainment(width, height float64) *Containment {
	return &Containment{
		name:   "containment",
		width:  width,
		height: height,
	}
}

func (c *Containment) Name() string { return c.name }

func (c *Containment) Observe(bodies []dynamo.Body, collisions int, tick int) {
	c.samples++
	for _, b := range bodies {
		if b.X < 0 || b.X > c.width || b.Y < 0 || b.Y > c.height {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Violations() int { return c.violations }

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
