package biquad

// Mask bits select which fixed cascade sections are active, matching the
// wire-level filter_mask bit layout from the public API.
const (
	MaskHighpass = 1 << 0
	MaskNotch50  = 1 << 1
	MaskNotch60  = 1 << 2
	MaskNotch100 = 1 << 3
	MaskNotch120 = 1 << 4
	MaskLowpass  = 1 << 5
)

const notchQ = 30.0

// Bank is the ordered filter cascade applied to an analysis block:
// highpass -> {notch50, notch60, notch100, notch120} -> lowpass -> per-string
// bandpasses. Enabled fixed sections are chosen by mask; bandpasses are
// appended dynamically via AddBandpass.
type Bank struct {
	mask       uint32
	sampleRate float64

	highpass Section
	notch50  Section
	notch60  Section
	notch100 Section
	notch120 Section
	lowpass  Section

	bandpasses []Section
}

// NewBank builds a filter bank for the given sample rate. highpassFreq and
// lowpassFreq are the cutoff frequencies for those two sections (the caller
// chooses the lowpass cutoff, typically a margin above the detector's upper
// frequency bound); mask selects which fixed sections participate in Apply.
func NewBank(sampleRate, highpassFreq, lowpassFreq float64, mask uint32) *Bank {
	b := &Bank{mask: mask, sampleRate: sampleRate}
	b.highpass = NewSection(Highpass, highpassFreq, 0.707, sampleRate)
	b.notch50 = NewSection(Notch, 50, notchQ, sampleRate)
	b.notch60 = NewSection(Notch, 60, notchQ, sampleRate)
	b.notch100 = NewSection(Notch, 100, notchQ, sampleRate)
	b.notch120 = NewSection(Notch, 120, notchQ, sampleRate)
	b.lowpass = NewSection(Lowpass, lowpassFreq, 0.707, sampleRate)
	return b
}

// AddBandpass appends a narrow per-string bandpass (Q≈8) centred on freq to
// the end of the cascade. Multiple may be chained.
func (b *Bank) AddBandpass(freq float64) {
	b.bandpasses = append(b.bandpasses, NewSection(Bandpass, freq, 8.0, b.sampleRate))
}

// ClearBandpasses removes all per-string bandpasses, leaving the fixed
// cascade untouched.
func (b *Bank) ClearBandpasses() {
	b.bandpasses = b.bandpasses[:0]
}

// SetMask updates which fixed sections are active.
func (b *Bank) SetMask(mask uint32) {
	b.mask = mask
}

// Apply filters block in place through every enabled section, in cascade
// order.
func (b *Bank) Apply(block []float32) {
	if b.mask&MaskHighpass != 0 {
		b.highpass.Process(block)
	}
	if b.mask&MaskNotch50 != 0 {
		b.notch50.Process(block)
	}
	if b.mask&MaskNotch60 != 0 {
		b.notch60.Process(block)
	}
	if b.mask&MaskNotch100 != 0 {
		b.notch100.Process(block)
	}
	if b.mask&MaskNotch120 != 0 {
		b.notch120.Process(block)
	}
	if b.mask&MaskLowpass != 0 {
		b.lowpass.Process(block)
	}
	for i := range b.bandpasses {
		b.bandpasses[i].Process(block)
	}
}

// Reset zeroes every section's filter memory, fixed and dynamic alike.
func (b *Bank) Reset() {
	b.highpass.Reset()
	b.notch50.Reset()
	b.notch60.Reset()
	b.notch100.Reset()
	b.notch120.Reset()
	b.lowpass.Reset()
	for i := range b.bandpasses {
		b.bandpasses[i].Reset()
	}
}
