package control

import "github.com/san-kum/fluidballs/internal/dynamo"

const (
	DefaultFrames  = 120
	DefaultGravity = 0.2
)

// Phase is one leg of the scripted gravity cycle.
type Phase int

const (
	Down Phase = iota
	Right
	Up
	Left
	Calm
)

var phaseNames = [...]string{"down", "right", "up", "left", "calm"}

func (p Phase) String() string {
	if p < Down || p > Calm {
		return "unknown"
	}
	return phaseNames[p]
}

// calmPhases is how many phase lengths Calm lasts.
const calmPhases = 2

// Cycle rotates gravity through Down, Right, Up, Left and Calm, each lasting
// frames ticks (Calm lasts twice as long). The sideways sign reverses at the
// end of every full cycle.
type Cycle struct {
	frames  int
	gravity float64
	elapsed int
	side    float64
	cycles  int
}

func NewCycle(frames int, gravity float64) *Cycle {
	if frames <= 0 {
		frames = DefaultFrames
	}
	return &Cycle{frames: frames, gravity: gravity, side: 1}
}

// Period is the length of one full cycle in ticks.
func (c *Cycle) Period() int { return c.frames * (int(Calm) + calmPhases) }

func (c *Cycle) Phase() Phase {
	p := Phase(c.elapsed / c.frames)
	if p > Calm {
		return Calm
	}
	return p
}

// Cycles is the number of completed cycles.
func (c *Cycle) Cycles() int { return c.cycles }

func (c *Cycle) Reset() {
	c.elapsed, c.cycles, c.side = 0, 0, 1
}

// Compute returns the acceleration for the current phase and advances the
// counter by one tick.
func (c *Cycle) Compute(tick int, prev dynamo.Vec2) dynamo.Vec2 {
	var a dynamo.Vec2
	switch c.Phase() {
	case Down:
		a = dynamo.Vec2{Y: c.gravity}
	case Right:
		a = dynamo.Vec2{X: c.side * c.gravity}
	case Up:
		a = dynamo.Vec2{Y: -c.gravity}
	case Left:
		a = dynamo.Vec2{X: -c.side * c.gravity}
	}

	c.elapsed++
	if c.elapsed >= c.Period() {
		c.elapsed = 0
		c.cycles++
		c.side = -c.side
	}
	return a
}
