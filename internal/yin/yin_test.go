package yin

import (
	"math"
	"testing"
)

func sine(freq, sr float64, n int, amp float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(amp * math.Sin(2*math.Pi*freq*float64(i)/sr))
	}
	return out
}

func TestEstimatePureToneE2(t *testing.T) {
	sr := 44100.0
	freq := 82.41
	n := 4096
	e := New(n, sr, 60, 110, 0.1)
	block := sine(freq, sr, n, 0.5)
	res, ok := e.Estimate(block, sr)
	if !ok {
		t.Fatal("expected successful estimate")
	}
	cents := 1200 * math.Log2(res.Frequency/freq)
	if math.Abs(cents) > 5 {
		t.Errorf("cents = %.2f, want within 5 of 0 (freq=%.3f)", cents, res.Frequency)
	}
	if res.Clarity < 0.8 {
		t.Errorf("clarity = %.3f, want >= 0.8 for a clean tone", res.Clarity)
	}
}

func TestEstimateHighTone(t *testing.T) {
	sr := 44100.0
	freq := 440.0
	n := 2048
	e := New(n, sr, 300, 600, 0.1)
	block := sine(freq, sr, n, 0.5)
	res, ok := e.Estimate(block, sr)
	if !ok {
		t.Fatal("expected successful estimate")
	}
	cents := 1200 * math.Log2(res.Frequency/freq)
	if math.Abs(cents) > 3 {
		t.Errorf("cents = %.2f, want within 3 of 0", cents)
	}
}

func TestEstimateSilenceRejected(t *testing.T) {
	sr := 44100.0
	n := 2048
	e := New(n, sr, 80, 400, 0.1)
	block := make([]float32, n)
	res, ok := e.Estimate(block, sr)
	// Silence produces a degenerate CMNDF; clarity should be very low even
	// if a lag is nominally returned, so callers can gate on clarity.
	if ok && res.Clarity > 0.5 {
		t.Errorf("silence should not yield high clarity, got %.3f", res.Clarity)
	}
}

func TestCentsInversion(t *testing.T) {
	sr := 44100.0
	target := 110.0
	n := 4096
	for _, cents := range []float64{-40, -20, -5, 0, 5, 20, 40} {
		freq := target * math.Pow(2, cents/1200)
		e := New(n, sr, 60, 180, 0.1)
		block := sine(freq, sr, n, 0.4)
		res, ok := e.Estimate(block, sr)
		if !ok {
			t.Fatalf("cents=%v: expected successful estimate", cents)
		}
		gotCents := 1200 * math.Log2(res.Frequency/target)
		if math.Abs(gotCents-cents) > 1.5 {
			t.Errorf("cents=%v: got %.3f", cents, gotCents)
		}
	}
}
