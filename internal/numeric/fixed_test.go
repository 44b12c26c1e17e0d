package numeric

import (
	"math"
	"testing"
)

func TestFixed_RoundTrip(t *testing.T) {
	for _, q := range []Fixed{Q10, Q20} {
		tol := 1 / q.scale
		for _, v := range []float64{0, 1, -1, 0.5, 3.25, -144.75, 4188.79} {
			got := q.ToFloat(q.FromFloat(v))
			if math.Abs(got-v) > tol {
				t.Errorf("%s: round trip %v -> %v", q.Name(), v, got)
			}
		}
	}
}

func TestFixed_Arithmetic(t *testing.T) {
	tests := []struct {
		name string
		op   func(q Fixed, a, b int64) int64
		want func(a, b float64) float64
	}{
		{"mul", Fixed.Mul, func(a, b float64) float64 { return a * b }},
		{"div", Fixed.Div, func(a, b float64) float64 { return a / b }},
		{"add", Fixed.Add, func(a, b float64) float64 { return a + b }},
		{"sub", Fixed.Sub, func(a, b float64) float64 { return a - b }},
	}
	pairs := [][2]float64{{2, 3}, {-1.5, 4}, {0.25, -0.5}, {-7, -0.125}, {523.6, 1.75}}

	for _, q := range []Fixed{Q10, Q20} {
		for _, tt := range tests {
			t.Run(q.Name()+"/"+tt.name, func(t *testing.T) {
				for _, p := range pairs {
					got := q.ToFloat(tt.op(q, q.FromFloat(p[0]), q.FromFloat(p[1])))
					want := tt.want(p[0], p[1])
					if math.Abs(got-want) > 4/q.scale*math.Max(1, math.Abs(want)) {
						t.Errorf("%v %s %v = %v, want %v", p[0], tt.name, p[1], got, want)
					}
				}
			})
		}
	}
}

func TestFixed_DivByZero(t *testing.T) {
	if got := Q20.Div(Q20.One(), 0); got != 0 {
		t.Errorf("Div by zero = %d, want 0", got)
	}
}

func TestFixed_Saturates(t *testing.T) {
	big := int64(math.MaxInt64 / 2)
	if got := Q20.Mul(big, big); got != math.MaxInt64 {
		t.Errorf("Mul overflow = %d, want MaxInt64", got)
	}
	if got := Q20.Mul(-big, big); got != math.MinInt64 {
		t.Errorf("negative Mul overflow = %d, want MinInt64", got)
	}
}

func TestFixed_Sqrt(t *testing.T) {
	for _, q := range []Fixed{Q10, Q20} {
		for _, v := range []float64{0, 1, 2, 64, 100, 0.25, 12345.5} {
			got := q.ToFloat(q.Sqrt(q.FromFloat(v)))
			want := math.Sqrt(v)
			if math.Abs(got-want) > 2/q.scale {
				t.Errorf("%s: sqrt(%v) = %v, want %v", q.Name(), v, got, want)
			}
		}
		if q.Sqrt(q.FromFloat(-4)) != 0 {
			t.Errorf("%s: sqrt of negative should be 0", q.Name())
		}
	}
}

func TestIsqrt(t *testing.T) {
	for _, n := range []uint64{0, 1, 2, 3, 4, 15, 16, 17, 1 << 40, math.MaxUint64} {
		r := isqrt(n)
		if r*r > n {
			t.Errorf("isqrt(%d) = %d, square exceeds input", n, r)
		}
		if r < 1<<32-1 && (r+1)*(r+1) <= n {
			t.Errorf("isqrt(%d) = %d, not the floor root", n, r)
		}
	}
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", BackendFloat, false},
		{"float", BackendFloat, false},
		{"q10", BackendQ10, false},
		{"q20", BackendQ20, false},
		{"q16", "", true},
	}
	for _, tt := range tests {
		got, err := ParseBackend(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBackend(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseBackend(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
