package metrics

import "github.com/san-kum/fluidballs/internal/dynamo"

// Collisions is the mean number of colliding pairs per tick.
type Collisions struct {
	name    string
	total   int
	peak    int
	samples int
}

func NewCollisions() *Collisions {
	return &Collisions{name: "collisions_per_tick"}
}

func (c *Collisions) Name() string { return c.name }

func (c *Collisions) Observe(bodies []dynamo.Body, collisions int, tick int) {
	c.total += collisions
	if collisions > c.peak {
		c.peak = collisions
	}
	c.samples++
}

func (c *Collisions) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.total) / float64(c.samples)
}

func (c *Collisions) Total() int { return c.total }

func (c *Collisions) Peak() int { return c.peak }

func (c *Collisions) Reset() {
	c.total = 0
	c.peak = 0
	c.samples = 0
}
