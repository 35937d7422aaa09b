package agc

import (
	"math"
	"testing"
)

func TestApplyRaisesQuietSignalToward(t *testing.T) {
	s := New(0.3, 0.1, 20.0, 0.8, 0.2)
	block := make([]float32, 512)
	for i := range block {
		block[i] = float32(0.01 * math.Sin(2*math.Pi*float64(i)/64))
	}
	preRMS := s.Apply(block)
	if preRMS <= 0 {
		t.Fatal("expected nonzero pre-AGC RMS")
	}
	if s.Gain() <= 1.0 {
		t.Errorf("expected gain to increase for a quiet block, got %.3f", s.Gain())
	}
}

func TestGainClamped(t *testing.T) {
	s := New(0.3, 0.5, 2.0, 1.0, 1.0)
	block := make([]float32, 256) // all zero -> target gain huge
	s.Apply(block)
	if s.Gain() > 2.0 {
		t.Errorf("gain = %.3f, want <= MaxGain 2.0", s.Gain())
	}
}

func TestResetRestoresUnityGain(t *testing.T) {
	s := New(0.3, 0.1, 20.0, 1.0, 1.0)
	block := make([]float32, 256)
	s.Apply(block)
	s.Reset()
	if s.Gain() != 1.0 {
		t.Errorf("Gain() after Reset = %.3f, want 1.0", s.Gain())
	}
}
