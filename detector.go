package tuner

import (
	"math"

	"github.com/jphollanti/nofuzz-tuner-go/internal/agc"
	"github.com/jphollanti/nofuzz-tuner-go/internal/biquad"
	"github.com/jphollanti/nofuzz-tuner-go/internal/corrector"
	"github.com/jphollanti/nofuzz-tuner-go/internal/fft"
	"github.com/jphollanti/nofuzz-tuner-go/internal/ringbuf"
	"github.com/jphollanti/nofuzz-tuner-go/internal/smoothing"
	"github.com/jphollanti/nofuzz-tuner-go/internal/yin"
)

// Filter-mask bits select which sections of the biquad cascade run.
const (
	MaskHighpass uint32 = 1 << iota
	MaskNotch50
	MaskNotch60
	MaskNotch100
	MaskNotch120
	MaskLowpass
)

// Feature-mask bits select which optional pipeline stages run.
const (
	FeatureFFTRefine uint32 = 1 << iota
	FeatureMovingAverage
	FeatureClarityEMA
	FeatureAGC
	FeatureHarmonicCorrection
	FeatureOctaveCorrection
)

// State is a detector's position in the Idle/Accumulating/Analysing/
// Emitted/Rejected state machine.
type State int

const (
	StateIdle State = iota
	StateAccumulating
	StateAnalysing
	StateEmitted
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateAccumulating:
		return "accumulating"
	case StateAnalysing:
		return "analysing"
	case StateEmitted:
		return "emitted"
	case StateRejected:
		return "rejected"
	default:
		return "idle"
	}
}

// Tunable floors and gates not fully pinned down by the design, recorded
// as decisions in DESIGN.md.
const (
	silenceFloorRMS    = 0.003
	clarityFloorYIN    = 0.5
	fftAdoptCentsGate  = 80.0
	outlierMarginCents = 50.0
)

// Detector owns one complete analysis pipeline: ring accumulator, filter
// bank, AGC, YIN estimator, optional FFT refiner, optional octave/harmonic
// corrector, and temporal smoothing. All of a Detector's buffers are
// exclusive to it; nothing here is safe to share across detectors or
// goroutines.
type Detector struct {
	sampleRate  float64
	blockSize   int
	fMin, fMax  float64
	threshold   float64
	featureMask uint32

	ring     *ringbuf.Buffer
	bank     *biquad.Bank
	agcState *agc.State
	yinEst   *yin.Estimator
	refiner  *fft.Refiner
	smooth   *smoothing.Buffer

	expectedFreq float64
	overrides    overrideTable

	registry   *Registry
	lastPreset string

	state         State
	lastRejection Rejection

	scratch []float32
}

// validateDetectorConfig runs the construction-time checks shared by
// NewDetector and Tuner (which validates its narrow-detector block size up
// front rather than deferring to first use).
func validateDetectorConfig(threshold, fMin, fMax, sampleRate float64, blockSize int) error {
	if blockSize < 1024 || blockSize > 32768 || blockSize&(blockSize-1) != 0 {
		return ErrInvalidBlockSize
	}
	if sampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	if fMin <= 0 || fMax <= 0 || fMin >= fMax {
		return ErrInvalidFrequencyBand
	}
	if threshold <= 0 || threshold > 1 {
		return ErrInvalidThreshold
	}
	return nil
}

// NewDetector builds a Detector. Construction validates every parameter:
// an invalid one is a ConfigurationError and the detector is not created.
func NewDetector(threshold, fMin, fMax, sampleRate float64, blockSize int, filterMask, featureMask uint32, avgBufferSize int, clarityAlpha float64) (*Detector, error) {
	if err := validateDetectorConfig(threshold, fMin, fMax, sampleRate, blockSize); err != nil {
		return nil, err
	}

	highpassFreq := 30.0
	lowpassFreq := 1.2 * fMax

	d := &Detector{
		sampleRate:  sampleRate,
		blockSize:   blockSize,
		fMin:        fMin,
		fMax:        fMax,
		threshold:   threshold,
		featureMask: featureMask,

		ring:     ringbuf.New(blockSize),
		bank:     biquad.NewBank(sampleRate, highpassFreq, lowpassFreq, filterMask),
		agcState: agc.New(0.2, 0.1, 10.0, 0.3, 0.05),
		yinEst:   yin.New(blockSize, sampleRate, fMin, fMax, threshold),
		smooth:   smoothing.New(avgBufferSize, clarityAlpha),

		overrides: newOverrideTable(),
		registry:  DefaultRegistry,

		scratch: make([]float32, blockSize),
	}
	if featureMask&FeatureFFTRefine != 0 || featureMask&(FeatureHarmonicCorrection|FeatureOctaveCorrection) != 0 {
		d.refiner = fft.NewRefiner(blockSize)
	}
	return d, nil
}

// SetRegistry points this detector at a non-default tuning registry.
func (d *Detector) SetRegistry(r *Registry) {
	d.registry = r
}

// AddStringFilter appends a narrow per-string bandpass to the filter
// cascade.
func (d *Detector) AddStringFilter(freq float64) {
	d.bank.AddBandpass(freq)
}

// SetExpectedFreq sets the target frequency the octave/harmonic corrector
// resolves candidates against.
func (d *Detector) SetExpectedFreq(freq float64) {
	d.expectedFreq = freq
}

// SetOverride registers a TargetOverride for a specific target frequency.
// A single Detector's buffers are sized at construction, so changing them
// requires rebuilding the detector; this method only records the override
// for inspection. Tuner is what actually rebuilds a detector with an
// override's block size/smoothing parameters applied.
func (d *Detector) SetOverride(targetHz float64, o TargetOverride) {
	d.overrides.set(targetHz, o)
}

// SetAGC enables or disables automatic gain control and sets its target
// RMS.
func (d *Detector) SetAGC(enabled bool, targetRMS float64) {
	if enabled {
		d.featureMask |= FeatureAGC
	} else {
		d.featureMask &^= FeatureAGC
	}
	d.agcState.TargetRMS = targetRMS
}

// SetHarmonicCorrection enables or disables the octave/harmonic corrector.
// The feature mask reserves separate bits for "harmonic" and "octave"
// correction, but both drive the same merged candidate-set algorithm
// (f/2, f, 2f, 3f, 1.5f); this implementation treats both bits as one
// switch, documented in DESIGN.md.
func (d *Detector) SetHarmonicCorrection(enabled bool) {
	if enabled {
		d.featureMask |= FeatureHarmonicCorrection | FeatureOctaveCorrection
		if d.refiner == nil {
			d.refiner = fft.NewRefiner(d.blockSize)
		}
	} else {
		d.featureMask &^= (FeatureHarmonicCorrection | FeatureOctaveCorrection)
	}
}

// State reports the detector's current position in the state machine.
func (d *Detector) State() State {
	return d.state
}

// LastRejection reports why the most recent Push call returning
// (PitchReport{}, false) failed to produce a report. Its zero value
// (RejectionNone) means the detector is simply still accumulating.
func (d *Detector) LastRejection() Rejection {
	return d.lastRejection
}

// Reset clears filter state, buffers, and smoothing history, returning the
// detector to Idle. Reset is idempotent.
func (d *Detector) Reset() {
	d.ring.Reset()
	d.bank.Reset()
	d.agcState.Reset()
	d.smooth.Reset()
	d.state = StateIdle
	d.lastRejection = Rejection{}
}

// resetFilterState performs the narrower reset an instability rejection
// requires: biquad state and AGC gain, preserving the smoothing buffer.
func (d *Detector) resetFilterState() {
	d.bank.Reset()
	d.agcState.Reset()
}

// Push feeds samples into the ring accumulator and, when a block
// completes, runs the full pipeline. ok is true only when a PitchReport was
// produced; otherwise call LastRejection to see why (or StateAccumulating
// if the block simply isn't full yet). This is the only call on the hot
// path.
func (d *Detector) Push(samples []float32, presetID string) (PitchReport, bool) {
	if d.lastPreset != "" && presetID != d.lastPreset {
		d.Reset()
	}
	d.lastPreset = presetID

	d.ring.Push(samples)
	if !d.ring.Ready() {
		d.state = StateAccumulating
		d.lastRejection = Rejection{}
		return PitchReport{}, false
	}

	d.state = StateAnalysing
	block := d.scratch
	d.ring.Snapshot(block)

	d.bank.Apply(block)
	if !sanitizeBlock(block) {
		d.resetFilterState()
		return d.reject(RejectionUnstable)
	}

	var rms float64
	if d.featureMask&FeatureAGC != 0 {
		rms = d.agcState.Apply(block)
		if !sanitizeBlock(block) {
			d.resetFilterState()
			return d.reject(RejectionUnstable)
		}
	} else {
		rms = agc.RMS(block)
	}

	if rms < silenceFloorRMS {
		return d.reject(RejectionSilence)
	}

	yr, ok := d.yinEst.Estimate(block, d.sampleRate)
	if !ok || yr.Clarity < clarityFloorYIN {
		return d.reject(RejectionLowClarity)
	}
	freq := yr.Frequency
	clarity := yr.Clarity

	var spectrum []float64
	needSpectrum := d.refiner != nil
	if needSpectrum {
		spectrum = d.refiner.Spectrum(block)
	}

	if d.featureMask&FeatureFFTRefine != 0 && spectrum != nil {
		if fFFT, ok := d.refiner.LocatePeak(spectrum, d.sampleRate, freq); ok {
			if math.Abs(1200*math.Log2(fFFT/freq)) < fftAdoptCentsGate {
				freq = fFFT
			}
		}
	}

	if d.featureMask&(FeatureHarmonicCorrection|FeatureOctaveCorrection) != 0 && d.expectedFreq > 0 {
		if corrected, ok := corrector.Correct(freq, d.expectedFreq, spectrum, d.sampleRate, d.refiner.PaddedLen()); ok {
			freq = corrected
		}
	}

	lowBound := d.fMin * math.Pow(2, -0.1)
	highBound := d.fMax * math.Pow(2, 0.1)
	if freq < lowBound || freq > highBound {
		return d.reject(RejectionOutOfBand)
	}

	preset, havePreset := d.registry.Get(presetID)
	var target float64
	if havePreset {
		target = Map(freq, preset).Target
	} else {
		target = d.expectedFreq
	}
	if target <= 0 {
		target = freq
	}
	cents := 1200 * math.Log2(freq/target)

	if !d.smooth.Accept(cents, outlierMarginCents) {
		return d.reject(RejectionOutlier)
	}

	reportFreq := freq
	if d.featureMask&FeatureMovingAverage != 0 {
		reportFreq = d.smooth.PushFrequency(freq)
	}

	confidence := clarity
	if d.featureMask&FeatureClarityEMA != 0 {
		confidence = d.smooth.PushClarity(clarity)
	}

	if d.featureMask&FeatureMovingAverage != 0 && !d.smooth.Warm() {
		return d.reject(RejectionUnstable)
	}

	var tuning TuningMatch
	if havePreset {
		tuning = Map(reportFreq, preset)
	} else {
		tuning = TuningMatch{Target: target, Cents: 1200 * math.Log2(reportFreq/target)}
	}

	d.state = StateEmitted
	d.lastRejection = Rejection{}
	return PitchReport{
		Frequency:  reportFreq,
		Clarity:    clarity,
		Confidence: confidence,
		RMS:        rms,
		Tuning:     tuning,
	}, true
}

func (d *Detector) reject(reason RejectionReason) (PitchReport, bool) {
	d.state = StateRejected
	d.lastRejection = Rejection{Reason: reason}
	return PitchReport{}, false
}

// sanitizeBlock reports whether block is free of NaN/Inf. It does not
// mutate block; callers decide how to recover (a filter-state-only reset
// on instability).
func sanitizeBlock(block []float32) bool {
	for _, v := range block {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
