package fft

import (
	"math"

	"github.com/jphollanti/nofuzz-tuner-go/internal/window"
)

// neighborhoodBins bounds the local-maximum search to a small neighborhood
// around the YIN estimate's bin.
const neighborhoodBins = 4

// Refiner locates and refines the spectral peak nearest a YIN estimate using
// a single real FFT over a (zero-padded, windowed) analysis block.
type Refiner struct {
	paddedLen int
}

// NewRefiner builds a Refiner for analysis blocks of the given length,
// picking the zero-padded FFT size as the next power of two >= blockLen.
func NewRefiner(blockLen int) *Refiner {
	return &Refiner{paddedLen: NextPow2(blockLen)}
}

// Spectrum windows (copy, not mutated) and zero-pads block to the
// refiner's FFT size, then returns its magnitude spectrum. This is also
// the spectrum the octave/harmonic corrector uses for spectral evidence,
// so callers that need both should compute it once and pass it to both
// LocatePeak and the corrector.
func (r *Refiner) Spectrum(block []float32) []float64 {
	padded := make([]float32, r.paddedLen)
	copy(padded, block)
	window.Apply(padded[:min(len(block), r.paddedLen)])
	return Magnitude(padded, r.paddedLen)
}

// PaddedLen returns the FFT size spectra produced by Spectrum will have
// (as a bin count, len(spectrum) == PaddedLen()/2+1).
func (r *Refiner) PaddedLen() int {
	return r.paddedLen
}

// Refine returns the FFT-refined frequency estimate nearest fRaw, and
// whether a usable peak was found. block is windowed (copy, not mutated)
// and zero-padded to the refiner's FFT size before transforming.
func (r *Refiner) Refine(block []float32, sampleRate, fRaw float64) (float64, bool) {
	if fRaw <= 0 || sampleRate <= 0 {
		return 0, false
	}
	return r.LocatePeak(r.Spectrum(block), sampleRate, fRaw)
}

// LocatePeak searches mag (a magnitude spectrum previously produced by
// Spectrum) for the largest bin within neighborhoodBins of the bin
// corresponding to fRaw, and refines it by quadratic interpolation in
// log-magnitude.
func (r *Refiner) LocatePeak(mag []float64, sampleRate, fRaw float64) (float64, bool) {
	if fRaw <= 0 || sampleRate <= 0 {
		return 0, false
	}

	kRaw := int(math.Round(fRaw * float64(r.paddedLen) / sampleRate))
	if kRaw < 1 || kRaw >= len(mag)-1 {
		return 0, false
	}

	lo := kRaw - neighborhoodBins
	if lo < 1 {
		lo = 1
	}
	hi := kRaw + neighborhoodBins
	if hi > len(mag)-2 {
		hi = len(mag) - 2
	}

	peak := lo
	for k := lo; k <= hi; k++ {
		if mag[k] > mag[peak] {
			peak = k
		}
	}

	kStar := quadraticPeak(logMag(mag[peak-1]), logMag(mag[peak]), logMag(mag[peak+1]), float64(peak))
	fFFT := kStar * sampleRate / float64(r.paddedLen)
	return fFFT, true
}

func logMag(m float64) float64 {
	if m <= 0 {
		return -300 // effectively -inf on the log scale, without producing -Inf
	}
	return math.Log(m)
}

// quadraticPeak fits a parabola through (k0-1, yMinus), (k0, yCentre),
// (k0+1, yPlus) and returns the fractional location of its vertex.
func quadraticPeak(yMinus, yCentre, yPlus, k0 float64) float64 {
	denom := yMinus - 2*yCentre + yPlus
	if denom == 0 {
		return k0
	}
	delta := 0.5 * (yMinus - yPlus) / denom
	if delta < -1 || delta > 1 {
		return k0
	}
	return k0 + delta
}
