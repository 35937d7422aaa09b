package tuner

import (
	"math"
	"testing"
)

func TestRegistryAddValidation(t *testing.T) {
	r := NewRegistry()

	if err := r.Add("p", "P", nil, nil); err != ErrEmptyPreset {
		t.Errorf("expected ErrEmptyPreset, got %v", err)
	}
	if err := r.Add("p", "P", []string{"A"}, []float64{1, 2}); err != ErrPresetLengthMismatch {
		t.Errorf("expected ErrPresetLengthMismatch, got %v", err)
	}
	if err := r.Add("p", "P", []string{"A"}, []float64{-1}); err != ErrNonPositiveFrequency {
		t.Errorf("expected ErrNonPositiveFrequency, got %v", err)
	}
	if err := r.Add("p", "P", []string{"A", "B"}, []float64{100, 100}); err != ErrDuplicateFrequency {
		t.Errorf("expected ErrDuplicateFrequency, got %v", err)
	}
	if err := r.Add("p", "P", []string{"A", "B"}, []float64{100, 200}); err != nil {
		t.Errorf("expected success, got %v", err)
	}
}

func TestRegistryGetAndList(t *testing.T) {
	r := NewRegistry()
	r.Add("a", "A", []string{"x"}, []float64{1})
	r.Add("b", "B", []string{"y"}, []float64{2})
	r.Add("a", "A2", []string{"x2"}, []float64{3}) // re-register same id

	if _, ok := r.Get("missing"); ok {
		t.Error("expected missing preset to not be found")
	}
	p, ok := r.Get("a")
	if !ok || p.Label != "A2" {
		t.Errorf("expected re-registration to replace preset a, got %+v", p)
	}

	list := r.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 presets in registration order, got %d", len(list))
	}
	if list[0].ID != "a" || list[1].ID != "b" {
		t.Errorf("unexpected registration order: %v", list)
	}
}

func TestDefaultRegistryHasBuiltins(t *testing.T) {
	for _, id := range []string{"standard_guitar", "drop_d", "standard_bass", "ukulele"} {
		if _, ok := DefaultRegistry.Get(id); !ok {
			t.Errorf("expected built-in preset %q to be registered", id)
		}
	}
}

func TestMapFindsNearestTarget(t *testing.T) {
	p := &Preset{Notes: []string{"E2", "A2"}, Freqs: []float64{82.41, 110.00}}
	m := Map(82.41, p)
	if m.Note != "E2" || math.Abs(m.Cents) > 0.01 {
		t.Errorf("got %+v, want E2 at ~0 cents", m)
	}
}

func TestMapTieBreaksTowardLowerFrequency(t *testing.T) {
	// Two targets exactly equidistant in cents from f.
	p := &Preset{Notes: []string{"Low", "High"}, Freqs: []float64{100, 200}}
	f := math.Sqrt(100 * 200) // geometric mean: equidistant in cents
	m := Map(f, p)
	if m.Note != "Low" {
		t.Errorf("expected tie to break toward the lower-frequency target, got %q", m.Note)
	}
}

func TestMapSignedCents(t *testing.T) {
	p := &Preset{Notes: []string{"A4"}, Freqs: []float64{440.0}}
	sharp := Map(440.0*math.Pow(2, 20.0/1200.0), p)
	if sharp.Cents <= 0 {
		t.Errorf("expected positive cents for a sharp note, got %v", sharp.Cents)
	}
	flat := Map(440.0*math.Pow(2, -20.0/1200.0), p)
	if flat.Cents >= 0 {
		t.Errorf("expected negative cents for a flat note, got %v", flat.Cents)
	}
}
