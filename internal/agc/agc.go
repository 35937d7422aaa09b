// Package agc implements the optional automatic gain control stage that
// normalises block RMS toward a target level before YIN analysis.
package agc

import "math"

// epsilon guards against division by zero on silent blocks.
const epsilon = 1e-9

// State holds one detector's AGC parameters and current smoothed gain.
type State struct {
	TargetRMS float64
	MinGain   float64
	MaxGain   float64
	Attack    float64 // coefficient applied when approaching a lower gain
	Release   float64 // coefficient applied when approaching a higher gain

	gain float64
}

// New builds an AGC State with unity initial gain. Attack must be faster
// (numerically larger) than release; callers are expected to pass attack >
// release, but this constructor does not enforce it (the detector passes
// fixed coefficients, attack 0.3 and release 0.05).
func New(targetRMS, minGain, maxGain, attack, release float64) *State {
	return &State{
		TargetRMS: targetRMS,
		MinGain:   minGain,
		MaxGain:   maxGain,
		Attack:    attack,
		Release:   release,
		gain:      1.0,
	}
}

// Apply computes the pre-AGC RMS of block, updates the smoothed gain toward
// the target, clamps it to [MinGain, MaxGain], and multiplies block by the
// smoothed gain in place. It returns the pre-AGC RMS, which callers must
// retain for silence-floor gating and reporting.
func (s *State) Apply(block []float32) float64 {
	rms := rms(block)

	denom := rms
	if denom < epsilon {
		denom = epsilon
	}
	target := s.TargetRMS / denom

	if target < s.gain {
		s.gain += s.Attack * (target - s.gain)
	} else {
		s.gain += s.Release * (target - s.gain)
	}
	if s.gain < s.MinGain {
		s.gain = s.MinGain
	}
	if s.gain > s.MaxGain {
		s.gain = s.MaxGain
	}

	g := float32(s.gain)
	for i := range block {
		block[i] *= g
	}
	return rms
}

// RMS computes the root-mean-square amplitude of block without touching any
// AGC state, for callers that need the input level while AGC is disabled.
func RMS(block []float32) float64 {
	return rms(block)
}

// Reset returns the smoothed gain to unity.
func (s *State) Reset() {
	s.gain = 1.0
}

// Gain returns the current smoothed gain.
func (s *State) Gain() float64 {
	return s.gain
}

func rms(block []float32) float64 {
	var sum float64
	for _, v := range block {
		sum += float64(v) * float64(v)
	}
	if len(block) == 0 {
		return 0
	}
	return math.Sqrt(sum / float64(len(block)))
}
