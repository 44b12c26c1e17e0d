// Package metrics implements [dynamo.Metric] observers over ball snapshots.
package metrics

import "github.com/san-kum/fluidballs/internal/dynamo"

// Standard returns the metric set the CLI attaches to every run.
func Standard(width, height float64) []dynamo.Metric {
	return []dynamo.Metric{
		NewKineticEnergy(),
		NewEnergyDrift(),
		NewCollisions(),
		NewMomentum(),
		NewContainment(width, height),
	}
}
