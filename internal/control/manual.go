package control

import "math"

// ManualSensor is a keyboard-driven Sensor. It reports ErrSensorUnavailable
// until the first nudge.
type ManualSensor struct {
	x, y    float64
	step    float64
	limit   float64
	engaged bool
}

func NewManual(step, limit float64) *ManualSensor {
	return &ManualSensor{step: step, limit: limit}
}

// Nudge tilts by dx, dy steps, clamped to the limit.
func (m *ManualSensor) Nudge(dx, dy float64) {
	m.engaged = true
	m.x = clamp(m.x+dx*m.step, m.limit)
	m.y = clamp(m.y+dy*m.step, m.limit)
}

// Level zeroes the tilt.
func (m *ManualSensor) Level() {
	m.engaged = true
	m.x, m.y = 0, 0
}

func (m *ManualSensor) Sample() (float64, float64, error) {
	if !m.engaged {
		return 0, 0, ErrSensorUnavailable
	}
	return m.x, m.y, nil
}

func clamp(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}
