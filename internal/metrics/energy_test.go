package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/fluidballs/internal/dynamo"
)

func TestKineticEnergy(t *testing.T) {
	m := NewKineticEnergy()

	bodies := []dynamo.Body{
		{VX: 3, VY: 4, Mass: 2},
		{VX: -1, Mass: 4},
	}
	m.Observe(bodies, 0, 0)

	expected := 0.5*2*25 + 0.5*4*1
	if math.Abs(m.Value()-expected) > 1e-9 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}

	m.Observe([]dynamo.Body{{Mass: 1}}, 0, 1)
	if m.Value() != 0 {
		t.Errorf("expected zero energy at rest, got %f", m.Value())
	}
	if m.Peak() != expected {
		t.Errorf("expected peak %f, got %f", expected, m.Peak())
	}

	m.Reset()
	if m.Value() != 0 || m.Peak() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift()

	m.Observe([]dynamo.Body{{VX: 2, Mass: 1}}, 0, 0)
	m.Observe([]dynamo.Body{{VX: 1, Mass: 1}}, 0, 1)
	m.Observe([]dynamo.Body{{VX: 2, Mass: 1}}, 0, 2)

	if math.Abs(m.Value()-0.75) > 1e-9 {
		t.Errorf("expected drift 0.75, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestCollisions(t *testing.T) {
	m := NewCollisions()
	for tick, n := range []int{0, 3, 1, 0} {
		m.Observe(nil, n, tick)
	}

	if m.Value() != 1 {
		t.Errorf("expected 1 collision per tick, got %f", m.Value())
	}
	if m.Total() != 4 || m.Peak() != 3 {
		t.Errorf("expected total 4 and peak 3, got %d and %d", m.Total(), m.Peak())
	}
}

func TestContainment(t *testing.T) {
	m := NewContainment(100, 50)

	if m.Value() != 1 {
		t.Errorf("expected 1 with no samples, got %f", m.Value())
	}

	m.Observe([]dynamo.Body{{X: 10, Y: 10}, {X: 99, Y: 49}}, 0, 0)
	m.Observe([]dynamo.Body{{X: 10, Y: 10}, {X: 101, Y: 49}}, 0, 1)

	if m.Value() != 0.5 || m.Violations() != 1 {
		t.Errorf("expected containment 0.5 with 1 violation, got %f, %d", m.Value(), m.Violations())
	}
}

func TestMomentum(t *testing.T) {
	m := NewMomentum()

	// Equal and opposite momenta cancel.
	m.Observe([]dynamo.Body{{VX: 1, Mass: 2}, {VX: -2, Mass: 1}}, 0, 0)
	if m.Value() != 0 {
		t.Errorf("expected zero momentum, got %f", m.Value())
	}

	m.Reset()
	m.Observe([]dynamo.Body{{VX: 3, Mass: 1}, {VY: 4, Mass: 1}}, 0, 0)
	if m.Value() != 5 {
		t.Errorf("expected momentum 5, got %f", m.Value())
	}
}

func TestStandardNames(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Standard(10, 10) {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %q", m.Name())
		}
		seen[m.Name()] = true
	}
	if len(seen) != 5 {
		t.Errorf("expected 5 metrics, got %d", len(seen))
	}
}

func TestStandardIncludesContainment(t *testing.T) {
	found := false
	for _, m := range Standard(100, 50) {
		if _, ok := m.(*Containment); ok {
			found = true
		}
	}
	if !found {
		t.Error("standard metric set has no containment metric")
	}
}
