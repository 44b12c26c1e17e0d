package numeric

import (
	"fmt"
	"math"
	"math/bits"
)

// Fixed is a Q-format backend: an int64 v represents v / 2^Shift.
// Products and quotients use 128-bit intermediates and saturate on overflow.
type Fixed struct {
	Shift uint
	scale float64
}

var (
	Q10 = NewFixed(10)
	Q20 = NewFixed(20)
)

// NewFixed returns a backend with the given number of fractional bits.
func NewFixed(shift uint) Fixed {
	if shift == 0 || shift > 31 {
		panic(fmt.Sprintf("numeric: fixed shift %d out of range [1,31]", shift))
	}
	return Fixed{Shift: shift, scale: float64(int64(1) << shift)}
}

func (f Fixed) Name() string { return fmt.Sprintf("q%d", f.Shift) }

func (f Fixed) FromFloat(v float64) int64 { return int64(math.Round(v * f.scale)) }
func (f Fixed) ToFloat(v int64) float64   { return float64(v) / f.scale }

// One returns 1.0 in this format.
func (f Fixed) One() int64 { return int64(1) << f.Shift }

func (f Fixed) Add(a, b int64) int64 { return a + b }
func (f Fixed) Sub(a, b int64) int64 { return a - b }
func (f Fixed) Less(a, b int64) bool { return a < b }
func (f Fixed) Epsilon() int64       { return 1 }

// Mul computes a*b >> Shift.
func (f Fixed) Mul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	negative := (a < 0) != (b < 0)
	ua, ub := abs64(a), abs64(b)

	hi, lo := bits.Mul64(ua, ub)
	if hi>>f.Shift != 0 {
		return saturate(negative)
	}
	result := (hi << (64 - f.Shift)) | (lo >> f.Shift)
	if result > math.MaxInt64 {
		return saturate(negative)
	}
	if negative {
		return -int64(result)
	}
	return int64(result)
}

// Div computes (a << Shift) / b. Division by zero yields zero.
func (f Fixed) Div(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	negative := (a < 0) != (b < 0)
	ua, ub := abs64(a), abs64(b)

	hi := ua >> (64 - f.Shift)
	lo := ua << f.Shift
	if hi >= ub {
		return saturate(negative)
	}
	quo, _ := bits.Div64(hi, lo, ub)
	if quo > math.MaxInt64 {
		return saturate(negative)
	}
	if negative {
		return -int64(quo)
	}
	return int64(quo)
}

// Sqrt returns floor(sqrt(v << Shift)), the Q-format square root.
// Negative input yields zero.
func (f Fixed) Sqrt(v int64) int64 {
	if v <= 0 {
		return 0
	}
	if uint64(v) > math.MaxUint64>>f.Shift {
		return f.FromFloat(math.Sqrt(f.ToFloat(v)))
	}
	return int64(isqrt(uint64(v) << f.Shift))
}

// isqrt is integer Newton-Raphson from an initial guess above the root.
func isqrt(n uint64) uint64 {
	if n < 2 {
		return n
	}
	x := uint64(1) << ((bits.Len64(n) + 1) / 2)
	for {
		y := (x + n/x) >> 1
		if y >= x {
			return x
		}
		x = y
	}
}

func abs64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}

func saturate(negative bool) int64 {
	if negative {
		return math.MinInt64
	}
	return math.MaxInt64
}
