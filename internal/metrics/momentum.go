package metrics

import (
	"math"

	"github.com/san-kum/fluidballs/internal/dynamo"
)

// Momentum is the mean magnitude of total linear momentum per tick.
type Momentum struct {
	name    string
	sum     float64
	samples int
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(bodies []dynamo.Body, collisions int, tick int) {
	var px, py float64
	for _, b := range bodies {
		px += b.Mass * b.VX
		py += b.Mass * b.VY
	}
	m.sum += math.Hypot(px, py)
	m.samples++
}

func (m *Momentum) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Momentum) Reset() {
	m.sum = 0
	m.samples = 0
}
