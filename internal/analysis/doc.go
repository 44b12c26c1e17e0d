// Package analysis characterises the time series a run produces.
//
//   - [PowerSpectrum]: Hann-windowed power spectrum of a series via go-dsp
//   - [DominantPeriod]: period in ticks of the strongest non-DC component
//   - [SettleTick]: first tick after which a series stays below a fraction of its peak
//
// The gravity cycle shows up in the kinetic energy spectrum as a peak at the
// cycle period and its harmonics:
//
//	energy, _, _ := store.LoadSeries(id)
//	period, _ := analysis.DominantPeriod(energy)
package analysis
