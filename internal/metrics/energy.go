package metrics

import (
	"math"

	"github.com/san-kum/fluidballs/internal/dynamo"
)

// KineticEnergy tracks the total kinetic energy of the latest tick.
type KineticEnergy struct {
	name    string
	current float64
	peak    float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(bodies []dynamo.Body, collisions int, tick int) {
	k.current = dynamo.TotalKineticEnergy(bodies)
	k.peak = math.Max(k.peak, k.current)
	k.samples++
}

func (k *KineticEnergy) Value() float64 { return k.current }

func (k *KineticEnergy) Peak() float64 { return k.peak }

func (k *KineticEnergy) Reset() {
	k.current = 0
	k.peak = 0
	k.samples = 0
}

// EnergyDrift is the largest relative change of kinetic energy from the
// first observed tick.
type EnergyDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(bodies []dynamo.Body, collisions int, tick int) {
	energy := dynamo.TotalKineticEnergy(bodies)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
