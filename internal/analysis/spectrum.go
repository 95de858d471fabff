package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns |X_k| for k in [0, n/2) of the mean-removed
// samples.
func PowerSpectrum(samples []float64) []float64 {
	if len(samples) < 2 {
		return nil
	}
	spectrum := fft.FFTReal(demean(samples))
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod returns the period of the strongest non-zero frequency
// bin for samples taken every dt. ok is false for short or flat series.
func DominantPeriod(samples []float64, dt float64) (period float64, ok bool) {
	if dt <= 0 || len(samples) < 4 {
		return 0, false
	}
	ps := PowerSpectrum(samples)

	peak, peakBin := 0.0, 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > peak {
			peak, peakBin = ps[k], k
		}
	}
	if peakBin == 0 || peak < 1e-9*float64(len(samples)) {
		return 0, false
	}
	return float64(len(samples)) * dt / float64(peakBin), true
}

func demean(samples []float64) []float64 {
	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(len(samples))

	out := make([]float64, len(samples))
	for i, v := range samples {
		out[i] = v - mean
	}
	return out
}

// Oscillation summarises a periodic-looking series.
type Oscillation struct {
	Amplitude float64
	Period    float64
	Crossings []float64
}

func (o Oscillation) Frequency() float64 {
	if o.Period == 0 {
		return 0
	}
	return 1 / o.Period
}

// Analyze measures the amplitude and spectral period of values sampled at
// times, plus the times they rise through their mid-range.
func Analyze(times, values []float64, dt float64) Oscillation {
	var o Oscillation
	if len(values) == 0 {
		return o
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	o.Amplitude = (hi - lo) / 2

	o.Period, _ = DominantPeriod(values, dt)

	mean := (hi + lo) / 2
	o.Crossings = Crossings(times, values, mean)
	return o
}
