package control

import (
	"errors"
	"log"

	"github.com/san-kum/fluidballs/internal/dynamo"
)

// ErrSensorUnavailable is returned by a Sensor that has no sample to give.
var ErrSensorUnavailable = errors.New("control: tilt sensor unavailable")

const DefaultTiltScale = 0.1

// Sensor reports the device tilt along x and y.
type Sensor interface {
	Sample() (x, y float64, err error)
}

// Tilt drives acceleration from a Sensor. A failed read keeps the previous
// acceleration; the error never reaches the world.
type Tilt struct {
	sensor   Sensor
	scale    float64
	logger   *log.Logger
	failures int
}

// NewTilt returns a tilt driver. logger may be nil.
func NewTilt(sensor Sensor, scale float64, logger *log.Logger) *Tilt {
	return &Tilt{sensor: sensor, scale: scale, logger: logger}
}

// Failures counts failed sensor reads.
func (t *Tilt) Failures() int { return t.failures }

func (t *Tilt) Compute(tick int, prev dynamo.Vec2) dynamo.Vec2 {
	x, y, err := t.sensor.Sample()
	if err != nil {
		t.failures++
		if t.logger != nil {
			t.logger.Printf("tick %d: could not read tilt: %v", tick, err)
		}
		return prev
	}
	return dynamo.Vec2{X: x * t.scale, Y: y * t.scale}
}
