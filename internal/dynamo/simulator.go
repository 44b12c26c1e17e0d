package dynamo

import (
	"context"
	"fmt"
	"log"
)

type Simulator struct {
	sys        System
	controller Controller
	metrics    []Metric
	observers  []Observer
	logger     *log.Logger
	bodies     []Body
	tick       int
}

// New returns a simulator driving sys. A nil controller leaves the world's
// acceleration untouched.
func New(sys System, controller Controller) *Simulator {
	return &Simulator{
		sys:        sys,
		controller: controller,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		bodies:     make([]Body, 0, sys.Len()),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Metrics returns the attached metrics in the order they were added.
func (s *Simulator) Metrics() []Metric { return s.metrics }

// SetLogger enables per-tick debug logging.
func (s *Simulator) SetLogger(l *log.Logger) { s.logger = l }

func (s *Simulator) System() System { return s.sys }

// Ticks returns how many ticks have run.
func (s *Simulator) Ticks() int { return s.tick }

// Bodies returns the snapshot taken after the most recent tick. The slice is
// reused by the next tick.
func (s *Simulator) Bodies() []Body { return s.bodies }

// Tick advances the world once: controller, step, snapshot, then metrics and
// observers. It returns the collision count.
func (s *Simulator) Tick() int {
	if s.controller != nil {
		s.sys.SetAcceleration(s.controller.Compute(s.tick, s.sys.Acceleration()))
	}

	collisions := s.sys.Step()
	s.bodies = s.sys.Bodies(s.bodies)

	for _, m := range s.metrics {
		m.Observe(s.bodies, collisions, s.tick)
	}
	for _, obs := range s.observers {
		obs.OnStep(s.bodies, collisions, s.tick)
	}

	if s.logger != nil {
		s.logger.Printf("tick %d: %d collisions", s.tick, collisions)
	}

	s.tick++
	return collisions
}

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Frames:     make([]Frame, 0),
		Energy:     make([]float64, 0, cfg.Ticks),
		Collisions: make([]int, 0, cfg.Ticks),
		Metrics:    make(map[string]float64),
		Errors:     make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("%w: %v", ErrContextCanceled, ctx.Err())
		default:
		}

		tick := s.tick
		collisions := s.Tick()

		if cfg.ValidateState {
			if err := s.sys.Validate(); err != nil {
				result.Errors = append(result.Errors, &SimulationError{Tick: tick, Wrapped: err})
				break
			}
		}

		result.StepsTaken++
		result.Energy = append(result.Energy, TotalKineticEnergy(s.bodies))
		result.Collisions = append(result.Collisions, collisions)

		if cfg.SampleEvery > 0 && tick%cfg.SampleEvery == 0 {
			frame := Frame{
				Tick:         tick,
				Acceleration: s.sys.Acceleration(),
				Collisions:   collisions,
				Bodies:       make([]Body, len(s.bodies)),
			}
			copy(frame.Bodies, s.bodies)
			result.Frames = append(result.Frames, frame)
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrParameterBounds, cfg.Ticks)
	}
	if cfg.SampleEvery < 0 {
		return fmt.Errorf("%w: sample interval must not be negative, got %d", ErrParameterBounds, cfg.SampleEvery)
	}
	return nil
}

// RunWithCallback ticks until the callback returns false, the context is
// canceled, or cfg.Ticks is reached (cfg.Ticks <= 0 runs unbounded).
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(bodies []Body, tick int) bool) error {
	for i := 0; cfg.Ticks <= 0 || i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrContextCanceled, ctx.Err())
		default:
		}

		tick := s.tick
		s.Tick()

		if cfg.ValidateState {
			if err := s.sys.Validate(); err != nil {
				return &SimulationError{Tick: tick, Wrapped: err}
			}
		}

		if !callback(s.bodies, tick) {
			return nil
		}
	}
	return nil
}
