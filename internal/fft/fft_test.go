package fft

import (
	"math"
	"testing"
)

func TestNextPow2(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{1, 1}, {2, 2}, {3, 4}, {1023, 1024}, {1024, 1024}, {1025, 2048},
	}
	for _, tt := range tests {
		if got := NextPow2(tt.in); got != tt.want {
			t.Errorf("NextPow2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestForwardDCBin(t *testing.T) {
	n := 64
	buf := make([]complex128, n)
	for i := range buf {
		buf[i] = complex(1, 0) // DC signal
	}
	GetState(n).Forward(buf)
	if math.Abs(real(buf[0])-float64(n)) > 1e-6 {
		t.Errorf("DC bin = %v, want %v", real(buf[0]), n)
	}
	for i := 1; i < n; i++ {
		if cAbs(buf[i]) > 1e-6 {
			t.Errorf("bin %d should be ~0 for DC input, got %v", i, buf[i])
		}
	}
}

func TestMagnitudeLocatesTone(t *testing.T) {
	n := 1024
	sr := 44100.0
	freq := 2000.0
	sig := make([]float32, n)
	for i := range sig {
		sig[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / sr))
	}
	mag := Magnitude(sig, n)
	peak := 0
	for i, m := range mag {
		if m > mag[peak] {
			peak = i
		}
	}
	wantBin := int(math.Round(freq * float64(n) / sr))
	if peak != wantBin {
		t.Errorf("peak bin = %d, want %d", peak, wantBin)
	}
}

func TestRefinerTracksPureTone(t *testing.T) {
	sr := 44100.0
	freq := 220.37 // slightly off a clean bin centre
	n := 2048
	sig := make([]float32, n)
	for i := range sig {
		sig[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / sr))
	}
	r := NewRefiner(n)
	got, ok := r.Refine(sig, sr, 220.0)
	if !ok {
		t.Fatal("expected refinement to succeed")
	}
	if math.Abs(got-freq) > 2.0 {
		t.Errorf("refined freq = %.3f, want within 2Hz of %.3f", got, freq)
	}
}

func TestRefinerRejectsInvalidInput(t *testing.T) {
	r := NewRefiner(256)
	if _, ok := r.Refine(make([]float32, 256), 44100, 0); ok {
		t.Error("expected rejection for zero fRaw")
	}
}
