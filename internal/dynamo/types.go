package dynamo

// Vec2 is a 2-D vector in world units.
type Vec2 struct {
	X, Y float64
}

// Body is a read-only float64 view of one ball.
type Body struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Mass   float64
}

// KineticEnergy returns 0.5·m·|v|².
func (b Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * (b.VX*b.VX + b.VY*b.VY)
}

// TotalKineticEnergy sums KineticEnergy over bodies.
func TotalKineticEnergy(bodies []Body) float64 {
	sum := 0.0
	for _, b := range bodies {
		sum += b.KineticEnergy()
	}
	return sum
}

// System is a world of balls advanced one tick at a time.
type System interface {
	Len() int
	Bounds() (width, height float64)
	Backend() string
	Acceleration() Vec2
	SetAcceleration(a Vec2)
	// Step runs collision, confinement and acceleration integration once and
	// returns the number of colliding pairs.
	Step() int
	// Bodies appends a snapshot of every ball to dst[:0].
	Bodies(dst []Body) []Body
	// Validate reports NaN/Inf components or non-positive radii.
	Validate() error
}

// Controller computes the acceleration for the next tick. prev is what the
// world currently holds.
type Controller interface {
	Compute(tick int, prev Vec2) Vec2
}

type Metric interface {
	Name() string
	Observe(bodies []Body, collisions int, tick int)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(bodies []Body, collisions int, tick int)
}

type Config struct {
	Ticks int
	Seed  int64
	// SampleEvery keeps every n-th tick's bodies in Result.Frames; 0 keeps none.
	SampleEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Ticks:         1200,
		SampleEvery:   10,
		ValidateState: true,
	}
}

// Frame is a sampled tick.
type Frame struct {
	Tick         int
	Acceleration Vec2
	Collisions   int
	Bodies       []Body
}

type Result struct {
	Frames     []Frame
	Energy     []float64
	Collisions []int
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}
