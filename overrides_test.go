package tuner

import "testing"

func TestOverrideTableLookup(t *testing.T) {
	tbl := newOverrideTable()
	tbl.set(82.41, TargetOverride{BlockSizeMultiplier: 2, SmoothingWindow: 7})

	o, ok := tbl.lookup(82.41)
	if !ok {
		t.Fatal("expected override to be found")
	}
	if o.BlockSizeMultiplier != 2 || o.SmoothingWindow != 7 {
		t.Errorf("got %+v", o)
	}

	if _, ok := tbl.lookup(110.0); ok {
		t.Error("expected no override for an unregistered target")
	}
}

func TestOverrideTableRoundsFrequency(t *testing.T) {
	tbl := newOverrideTable()
	tbl.set(146.83, TargetOverride{ClarityAlpha: 0.2})

	if _, ok := tbl.lookup(146.6); !ok {
		t.Error("expected lookup to tolerate small drift via rounding")
	}
}

func TestDetectorSetOverride(t *testing.T) {
	d, err := NewDetector(0.1, 70, 350, testSampleRate, 4096, MaskHighpass|MaskLowpass, FeatureMovingAverage, 5, 0.25)
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}
	d.SetOverride(82.41, TargetOverride{SmoothingWindow: 7})
	if _, ok := d.overrides.lookup(82.41); !ok {
		t.Error("expected override to be registered on the detector")
	}
}
