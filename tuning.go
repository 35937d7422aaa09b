package tuner

import "math"

// Preset is a named set of target frequencies (a "tuning"), e.g. standard
// guitar EADGBE. Presets are immutable once registered: Registry never
// mutates a Preset after Add returns.
type Preset struct {
	ID    string
	Label string
	Notes []string
	Freqs []float64
}

// Registry is a process-wide, append-only set of tuning presets. The host
// is single-threaded and concurrent registration is out of scope, so
// Registry carries no locking of its own.
type Registry struct {
	byID  map[string]*Preset
	order []string
}

// NewRegistry builds an empty registry. Most callers use the package-level
// DefaultRegistry rather than constructing their own.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Preset)}
}

// Add registers a preset under id. Re-registering the same id with
// identical contents is a no-op; re-registering it with different contents
// still replaces the previous definition; Add only ever returns an error to
// reject validation failures, never to reject a repeat call.
func (r *Registry) Add(id, label string, noteNames []string, freqs []float64) error {
	if len(freqs) == 0 {
		return ErrEmptyPreset
	}
	if len(noteNames) != len(freqs) {
		return ErrPresetLengthMismatch
	}
	seen := make(map[float64]struct{}, len(freqs))
	for _, f := range freqs {
		if f <= 0 {
			return ErrNonPositiveFrequency
		}
		if _, dup := seen[f]; dup {
			return ErrDuplicateFrequency
		}
		seen[f] = struct{}{}
	}

	if _, exists := r.byID[id]; !exists {
		r.order = append(r.order, id)
	}
	r.byID[id] = &Preset{
		ID:    id,
		Label: label,
		Notes: append([]string(nil), noteNames...),
		Freqs: append([]float64(nil), freqs...),
	}
	return nil
}

// Get looks up a preset by id.
func (r *Registry) Get(id string) (*Preset, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// List returns all registered presets in registration order.
func (r *Registry) List() []*Preset {
	out := make([]*Preset, len(r.order))
	for i, id := range r.order {
		out[i] = r.byID[id]
	}
	return out
}

// DefaultRegistry holds the built-in presets registered at init: standard
// guitar, drop D, standard bass, and ukulele. Hosts that need only the
// built-ins can pass DefaultRegistry directly; hosts that add custom
// tunings should build their own Registry and add the built-ins they want
// via DefaultRegistry.Get.
var DefaultRegistry = NewRegistry()

func init() {
	mustAdd(DefaultRegistry, "standard_guitar", "Standard Guitar",
		[]string{"E2", "A2", "D3", "G3", "B3", "E4"},
		[]float64{82.41, 110.00, 146.83, 196.00, 246.94, 329.63})

	mustAdd(DefaultRegistry, "drop_d", "Drop D",
		[]string{"D2", "A2", "D3", "G3", "B3", "E4"},
		[]float64{73.42, 110.00, 146.83, 196.00, 246.94, 329.63})

	mustAdd(DefaultRegistry, "standard_bass", "Standard Bass",
		[]string{"E1", "A1", "D2", "G2"},
		[]float64{41.20, 55.00, 73.42, 98.00})

	mustAdd(DefaultRegistry, "ukulele", "Ukulele",
		[]string{"G4", "C4", "E4", "A4"},
		[]float64{392.00, 261.63, 329.63, 440.00})
}

// mustAdd registers a built-in preset and panics on failure: the built-in
// tables above are constants controlled by this package, so a failure here
// is a programming error, not a runtime condition.
func mustAdd(r *Registry, id, label string, notes []string, freqs []float64) {
	if err := r.Add(id, label, notes, freqs); err != nil {
		panic("tuner: invalid built-in preset " + id + ": " + err.Error())
	}
}

// Map finds the nearest target in p to f and returns its note name,
// frequency, and the signed cents offset from target to f. Ties are
// broken toward the lower-frequency target; distances that differ only by
// floating-point rounding (under mapTieCents) count as a tie.
func Map(f float64, p *Preset) TuningMatch {
	const mapTieCents = 1e-9

	bestIdx := 0
	bestAbsCents := math.Inf(1)
	bestCents := 0.0

	for i, target := range p.Freqs {
		cents := 1200 * math.Log2(f/target)
		abs := math.Abs(cents)
		if abs < bestAbsCents-mapTieCents {
			bestAbsCents = abs
			bestCents = cents
			bestIdx = i
		} else if math.Abs(abs-bestAbsCents) <= mapTieCents && target < p.Freqs[bestIdx] {
			bestAbsCents = abs
			bestCents = cents
			bestIdx = i
		}
	}

	return TuningMatch{
		Note:   p.Notes[bestIdx],
		Target: p.Freqs[bestIdx],
		Cents:  bestCents,
	}
}
