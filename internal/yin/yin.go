// Package yin implements the YIN fundamental-frequency estimator: the
// difference function, cumulative mean normalised difference function
// (CMNDF), absolute-threshold lag search, and parabolic interpolation.
package yin

import "math"

// epsilon guards the CMNDF running-sum division against division by zero on
// silent or near-silent input.
const epsilon = 1e-12

// Estimator holds the reusable buffers for one detector's YIN analysis.
// Buffers are sized once at construction and reused across blocks.
type Estimator struct {
	n         int
	tauMin    int
	tauMax    int
	threshold float64

	diff  []float64
	cmndf []float64
}

// New builds an Estimator for analysis blocks of length n, with lag bounds
// derived from [fMin, fMax] at the given sample rate, and absolute
// threshold (typically 0.1).
func New(n int, sampleRate, fMin, fMax, threshold float64) *Estimator {
	tauMin := int(sampleRate / fMax)
	tauMax := int(sampleRate / fMin)
	if tauMin < 1 {
		tauMin = 1
	}
	if tauMax > n/2 {
		tauMax = n / 2
	}
	if tauMin > tauMax {
		tauMin = tauMax
	}
	return &Estimator{
		n:         n,
		tauMin:    tauMin,
		tauMax:    tauMax,
		threshold: threshold,
		diff:      make([]float64, n/2+2),
		cmndf:     make([]float64, n/2+2),
	}
}

// Result is a single YIN analysis outcome.
type Result struct {
	Frequency float64
	Clarity   float64
	Lag       float64 // fractional lag, tau*
}

// Estimate runs the YIN pipeline over block (length n, already filtered and
// AGC'd) at the given sample rate. ok is false if no usable lag could be
// resolved within [tauMin, tauMax].
func (e *Estimator) Estimate(block []float32, sampleRate float64) (Result, bool) {
	e.differenceFunction(block)
	e.cumulativeMeanNormalise()

	tau, found := e.absoluteThresholdSearch()
	if !found {
		tau = e.globalMinimum()
	}

	tauStar := e.parabolicInterpolate(tau)
	if tauStar < float64(e.tauMin) || tauStar > float64(e.tauMax) {
		return Result{}, false
	}

	clarity := 1 - e.cmndf[tau]
	if clarity < 0 {
		clarity = 0
	}
	if clarity > 1 {
		clarity = 1
	}

	return Result{
		Frequency: sampleRate / tauStar,
		Clarity:   clarity,
		Lag:       tauStar,
	}, true
}

// differenceFunction computes d(tau) = sum_{j=0}^{W-1} (x[j]-x[j+tau])^2 for
// tau in [1, N/2], with W = N - tauMax so every tau up to tauMax shares the
// same window; larger lags use a shortened window that stays within the
// block.
func (e *Estimator) differenceFunction(x []float32) {
	w := e.n - e.tauMax
	if w < 1 {
		w = 1
	}
	maxTau := e.n / 2
	for tau := 1; tau <= maxTau; tau++ {
		var sum float64
		limit := w
		if tau+limit > len(x) {
			limit = len(x) - tau
		}
		for j := 0; j < limit; j++ {
			d := float64(x[j]) - float64(x[j+tau])
			sum += d * d
		}
		e.diff[tau] = sum
	}
}

// cumulativeMeanNormalise computes d'(tau) = d(tau)*tau / running sum of
// d(1..tau); d'(0) = 1.
func (e *Estimator) cumulativeMeanNormalise() {
	e.cmndf[0] = 1
	runningSum := 0.0
	maxTau := e.n / 2
	for tau := 1; tau <= maxTau; tau++ {
		runningSum += e.diff[tau]
		if runningSum < epsilon {
			e.cmndf[tau] = 1
			continue
		}
		e.cmndf[tau] = e.diff[tau] * float64(tau) / runningSum
	}
}

// absoluteThresholdSearch finds the smallest tau in [tauMin, tauMax] with
// d'(tau) < threshold and d'(tau) < d'(tau+1).
func (e *Estimator) absoluteThresholdSearch() (int, bool) {
	for tau := e.tauMin; tau <= e.tauMax; tau++ {
		if e.cmndf[tau] < e.threshold && e.cmndf[tau] < e.cmndf[tau+1] {
			return tau, true
		}
	}
	return 0, false
}

// globalMinimum picks the tau in [tauMin, tauMax] with the smallest d'.
func (e *Estimator) globalMinimum() int {
	best := e.tauMin
	for tau := e.tauMin + 1; tau <= e.tauMax; tau++ {
		if e.cmndf[tau] < e.cmndf[best] {
			best = tau
		}
	}
	return best
}

// parabolicInterpolate refines tau to a fractional lag using its CMNDF
// neighbours. Edge cases at tauMin or tauMax skip interpolation.
func (e *Estimator) parabolicInterpolate(tau int) float64 {
	if tau <= e.tauMin || tau >= e.tauMax {
		return float64(tau)
	}
	yMinus := e.cmndf[tau-1]
	yCentre := e.cmndf[tau]
	yPlus := e.cmndf[tau+1]

	denom := yMinus - 2*yCentre + yPlus
	if denom == 0 {
		return float64(tau)
	}
	delta := 0.5 * (yMinus - yPlus) / denom
	if math.IsNaN(delta) || delta < -1 || delta > 1 {
		return float64(tau)
	}
	return float64(tau) + delta
}
