package control

import "github.com/san-kum/fluidballs/internal/dynamo"

// Source selects which driver a Switch delegates to.
type Source int

const (
	Scripted Source = iota
	Sensed
)

func (s Source) String() string {
	if s == Sensed {
		return "sensor"
	}
	return "scripted"
}

// Switch holds a scripted and a sensor driver and delegates to one of them.
type Switch struct {
	scripted dynamo.Controller
	sensed   dynamo.Controller
	source   Source
}

func NewSwitch(scripted, sensed dynamo.Controller) *Switch {
	return &Switch{scripted: scripted, sensed: sensed}
}

func (s *Switch) Source() Source { return s.source }

func (s *Switch) SetSource(src Source) { s.source = src }

// Toggle flips the gravity source and returns the new one.
func (s *Switch) Toggle() Source {
	if s.source == Scripted {
		s.source = Sensed
	} else {
		s.source = Scripted
	}
	return s.source
}

func (s *Switch) Compute(tick int, prev dynamo.Vec2) dynamo.Vec2 {
	if s.source == Sensed {
		return s.sensed.Compute(tick, prev)
	}
	return s.scripted.Compute(tick, prev)
}

// Scripted returns the scripted driver.
func (s *Switch) Scripted() dynamo.Controller { return s.scripted }

// Reset rewinds the scripted driver when it supports it.
func (s *Switch) Reset() {
	if r, ok := s.scripted.(interface{ Reset() }); ok {
		r.Reset()
	}
}
