package tuner

import "github.com/jphollanti/nofuzz-tuner-go/internal/fft"

// Tuner is the top-level convenience facade: it owns a wide-band Selector
// and lazily builds, caches, and switches between narrow-band Detectors as
// the selector's locked target changes. When the lock changes, the
// detector for the old target is reset and the detector for the new target
// (reset too, if it was already cached) becomes active. Per-target TargetOverride entries (block size multiplier,
// smoothing window, clarity alpha) are applied when a narrow detector is
// first built for a given target.
//
// Tuner is the only type most hosts need; Detector and Selector remain
// independently usable for hosts that want to manage detector lifetime
// themselves.
type Tuner struct {
	registry *Registry

	threshold, fMin, fMax, sampleRate float64
	blockSize                         int
	filterMask, featureMask           uint32
	avgBufferSize                     int
	clarityAlpha                      float64

	overrides overrideTable
	selector  *Selector

	detectors    map[int]*Detector
	active       *Detector
	activeTarget float64
}

// NewTuner builds a Tuner. threshold/fMin/fMax/sampleRate/filterMask/
// featureMask/avgBufferSize/clarityAlpha configure every narrow-band
// Detector it builds; wideBlockSize and votingWindow configure the
// internal Selector's wide-band Detector, which typically runs a coarser
// block size than the narrow-band detectors it feeds.
func NewTuner(registry *Registry, threshold, fMin, fMax, sampleRate float64, blockSize int, filterMask, featureMask uint32, avgBufferSize int, clarityAlpha float64, wideBlockSize, votingWindow int) (*Tuner, error) {
	if registry == nil {
		registry = DefaultRegistry
	}

	if err := validateDetectorConfig(threshold, fMin, fMax, sampleRate, blockSize); err != nil {
		return nil, err
	}
	wide, err := NewDetector(threshold, fMin, fMax, sampleRate, wideBlockSize, filterMask, featureMask, avgBufferSize, clarityAlpha)
	if err != nil {
		return nil, err
	}

	t := &Tuner{
		registry:      registry,
		threshold:     threshold,
		fMin:          fMin,
		fMax:          fMax,
		sampleRate:    sampleRate,
		blockSize:     blockSize,
		filterMask:    filterMask,
		featureMask:   featureMask,
		avgBufferSize: avgBufferSize,
		clarityAlpha:  clarityAlpha,
		overrides:     newOverrideTable(),
		selector:      NewSelector(wide, registry, votingWindow),
		detectors:     make(map[int]*Detector),
	}
	return t, nil
}

// SetOverride registers a TargetOverride applied the first time a narrow
// detector is built for targetHz.
func (t *Tuner) SetOverride(targetHz float64, o TargetOverride) {
	t.overrides.set(targetHz, o)
}

// Selector exposes the underlying wide-band Selector, e.g. to inspect
// Mode() or Target() directly.
func (t *Tuner) Selector() *Selector {
	return t.selector
}

// Push runs the selector first, switching (or lazily building) the active
// narrow-band detector if the locked target changed, then pushes the same
// samples through the active detector. It returns no report until the
// selector has locked onto a target for the first time.
func (t *Tuner) Push(samples []float32, presetID string) (PitchReport, bool) {
	target, changed := t.selector.Push(samples, presetID)
	if changed {
		t.switchTo(target)
	}
	if t.active == nil {
		return PitchReport{}, false
	}
	return t.active.Push(samples, presetID)
}

// Reset clears the selector and every cached narrow-band detector,
// returning the Tuner to its just-constructed condition.
func (t *Tuner) Reset() {
	t.selector.Reset()
	for _, d := range t.detectors {
		d.Reset()
	}
	t.active = nil
	t.activeTarget = 0
}

func (t *Tuner) switchTo(target float64) {
	key := roundHz(target)
	d, ok := t.detectors[key]
	if t.active != nil && t.active != d {
		t.active.Reset()
	}
	if !ok {
		d = t.buildDetector(target)
		t.detectors[key] = d
	} else {
		d.Reset()
	}
	t.active = d
	t.activeTarget = target
}

func (t *Tuner) buildDetector(target float64) *Detector {
	n := t.blockSize
	avg := t.avgBufferSize
	alpha := t.clarityAlpha

	if o, ok := t.overrides.lookup(target); ok {
		if o.BlockSizeMultiplier > 1 {
			n = fft.NextPow2(n * o.BlockSizeMultiplier)
			if n > 32768 {
				n = 32768
			}
		}
		if o.SmoothingWindow > 0 {
			avg = o.SmoothingWindow
		}
		if o.ClarityAlpha > 0 {
			alpha = o.ClarityAlpha
		}
	}

	// n is always a power of two in [1024, 32768] by construction above,
	// and threshold/fMin/fMax/sampleRate were already validated when the
	// Tuner's own wide-band detector was built, so this cannot fail.
	d, _ := NewDetector(t.threshold, t.fMin, t.fMax, t.sampleRate, n, t.filterMask, t.featureMask, avg, alpha)
	d.AddStringFilter(target)
	d.SetExpectedFreq(target)
	d.SetRegistry(t.registry)
	return d
}
