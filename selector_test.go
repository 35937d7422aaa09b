package tuner

import (
	"math"
	"testing"
)

func newWideSelector(t *testing.T) *Selector {
	t.Helper()
	wide, err := NewDetector(0.15, 70, 350, testSampleRate, 8192, MaskHighpass|MaskLowpass,
		FeatureMovingAverage|FeatureClarityEMA, 3, 0.3)
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}
	return NewSelector(wide, DefaultRegistry, 3)
}

func pushSelectorSine(t *testing.T, s *Selector, freq float64, blocks int, presetID string) (target float64, changed bool) {
	t.Helper()
	n := s.wide.blockSize
	phase := 0.0
	for i := 0; i < blocks; i++ {
		block := sineBlock(freq, 0.5, n, phase, testSampleRate)
		phase += 2 * math.Pi * freq * float64(n) / testSampleRate
		tgt, ch := s.Push(block, presetID)
		target = tgt
		if ch {
			changed = true
		}
	}
	return target, changed
}

func TestSelectorLocksOntoPlayedString(t *testing.T) {
	s := newWideSelector(t)
	target, _ := pushSelectorSine(t, s, 110.00, 6, "standard_guitar")

	if math.Abs(target-110.00) > 0.01 {
		t.Fatalf("expected selector to lock onto A2 (110Hz), got %v", target)
	}
	if s.Mode() != SelectorLocked {
		t.Errorf("mode = %v, want Locked", s.Mode())
	}
}

func TestSelectorSwitchesWhenStringChanges(t *testing.T) {
	s := newWideSelector(t)
	pushSelectorSine(t, s, 110.00, 6, "standard_guitar")
	if s.Target() != 110.00 {
		t.Fatalf("expected initial lock on 110Hz, got %v", s.Target())
	}

	target, changed := pushSelectorSine(t, s, 82.41, 6, "standard_guitar")
	if !changed {
		t.Error("expected a switch to be reported when the played string changes")
	}
	if math.Abs(target-82.41) > 0.01 {
		t.Errorf("expected selector to switch to E2 (82.41Hz), got %v", target)
	}
}

func TestSelectorResetReturnsToSearching(t *testing.T) {
	s := newWideSelector(t)
	pushSelectorSine(t, s, 110.00, 6, "standard_guitar")
	s.Reset()
	if s.Mode() != SelectorSearching {
		t.Errorf("mode after reset = %v, want Searching", s.Mode())
	}
	if s.Target() != 0 {
		t.Errorf("target after reset = %v, want 0", s.Target())
	}
}
