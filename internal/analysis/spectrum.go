package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns |X(k)|² for k in [0, n/2] of the mean-removed,
// Hann-windowed series. Bin k corresponds to a period of n/k ticks.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	windowed := make([]float64, n)
	for i, v := range data {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = (v - mean) * w
	}

	spectrum := fft.FFTReal(windowed)
	ps := make([]float64, n/2+1)
	for k := range ps {
		a := cmplx.Abs(spectrum[k])
		ps[k] = a * a
	}
	return ps
}

// DominantPeriod returns the period in ticks of the strongest bin above DC
// and its power. It returns 0, 0 for flat or short series.
func DominantPeriod(data []float64) (float64, float64) {
	ps := PowerSpectrum(data)
	best, power := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > power {
			best, power = k, ps[k]
		}
	}
	if best == 0 || power < 1e-12 {
		return 0, 0
	}
	return float64(len(data)) / float64(best), power
}

// SettleTick returns the first index after which every value stays at or
// below fraction of the series peak, or -1 if the series never settles.
func SettleTick(data []float64, fraction float64) int {
	if len(data) == 0 {
		return -1
	}
	peak := data[0]
	for _, v := range data {
		peak = math.Max(peak, v)
	}
	limit := peak * fraction

	settle := -1
	for i := len(data) - 1; i >= 0; i-- {
		if data[i] > limit {
			break
		}
		settle = i
	}
	return settle
}
