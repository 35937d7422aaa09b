package tuner

// TargetOverride lets a host tune the detector's behaviour for a specific
// expected target frequency, e.g. widening the analysis block or slowing
// the smoothing buffer for very low bass strings where one period spans
// many milliseconds.
type TargetOverride struct {
	// BlockSizeMultiplier scales the detector's configured block size when
	// this override is active (e.g. 2 to double the analysis window for a
	// low string). Values <= 0 are treated as 1 (no scaling).
	BlockSizeMultiplier int

	// SmoothingWindow overrides the smoothing buffer's FIFO capacity
	// (clamped to [3, 7] same as the base configuration). Zero means "use
	// the detector's configured value".
	SmoothingWindow int

	// ClarityAlpha overrides the clarity EMA coefficient (clamped to
	// [0.1, 0.5]). Zero means "use the detector's configured value".
	ClarityAlpha float64
}

// overrideTable maps a rounded target frequency (Hz, rounded to the
// nearest integer) to its override. Lookup by rounded frequency rather
// than exact equality tolerates the small drift between a preset's listed
// target and the frequency a caller actually passes to SetExpectedFreq.
type overrideTable map[int]TargetOverride

func newOverrideTable() overrideTable {
	return make(overrideTable)
}

func (t overrideTable) set(targetHz float64, o TargetOverride) {
	t[roundHz(targetHz)] = o
}

func (t overrideTable) lookup(targetHz float64) (TargetOverride, bool) {
	o, ok := t[roundHz(targetHz)]
	return o, ok
}

func roundHz(f float64) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}
