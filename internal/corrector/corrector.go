// Package corrector implements the octave/harmonic error corrector: given a
// YIN/FFT candidate frequency and an expected target, it resolves octave
// doublings/halvings and harmonic lock-ons by comparing {f/2, f, 2f, 3f,
// 3f/2} against the target in cents, weighted by spectral evidence from the
// existing FFT magnitude spectrum when available.
package corrector

import (
	"math"
	"sort"
)

// centsScale (Ct) normalises the cents-distance term of the cost function.
const centsScale = 100.0

// spectralWeight (w) controls how strongly spectral evidence can override a
// cents-distance preference.
const spectralWeight = 0.5

// maxCentsDistance bounds how far from the target a candidate may be and
// still be considered.
const maxCentsDistance = 600.0

// Correct returns the best candidate among {f/2, f, 2f, 3f, 3f/2} given the
// expected target frequency fExp, optionally weighted by spectral evidence
// from spectrum (the magnitude spectrum of an fftLen-point FFT at
// sampleRate; pass a nil spectrum to disable the evidence term). ok is false
// if no candidate is within maxCentsDistance of fExp.
func Correct(f, fExp float64, spectrum []float64, sampleRate float64, fftLen int) (float64, bool) {
	if f <= 0 || fExp <= 0 {
		return 0, false
	}

	candidates := [...]float64{f / 2, f, f * 2, f * 3, f * 1.5}

	var medianMag float64
	if len(spectrum) > 0 {
		medianMag = median(spectrum)
	}

	best := 0.0
	bestCost := math.Inf(1)
	found := false

	for _, c := range candidates {
		if c <= 0 {
			continue
		}
		cents := 1200 * math.Log2(c/fExp)
		if math.Abs(cents) > maxCentsDistance {
			continue
		}

		evidence := 0.0
		if len(spectrum) > 0 {
			bin := int(math.Round(c * float64(fftLen) / sampleRate))
			if bin >= 0 && bin < len(spectrum) {
				evidence = logMag(spectrum[bin]) - logMag(medianMag)
			}
		}

		cost := math.Abs(cents)/centsScale - spectralWeight*evidence
		if cost < bestCost {
			bestCost = cost
			best = c
			found = true
		}
	}

	return best, found
}

func logMag(m float64) float64 {
	if m <= 0 {
		return -300
	}
	return math.Log(m)
}

func median(vals []float64) float64 {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
