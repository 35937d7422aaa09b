// errors.go defines the public configuration-error sentinels for this
// package: package-prefixed errors.New values compared with errors.Is,
// raised synchronously at construction or registration time. Runtime
// outcomes are never errors — see RejectionReason in report.go.
package tuner

import "errors"

// Configuration errors, raised by NewDetector, Registry.Add, and related
// construction-time calls. These are fatal to the detector/registration
// that raised them; they never appear on the hot path.
var (
	// ErrInvalidBlockSize indicates block size N is not a power of two in
	// [1024, 32768].
	ErrInvalidBlockSize = errors.New("tuner: invalid block size (must be a power of two in [1024, 32768])")

	// ErrInvalidFrequencyBand indicates a non-positive bound or fMin >= fMax.
	ErrInvalidFrequencyBand = errors.New("tuner: invalid frequency band (fMin must be < fMax)")

	// ErrInvalidSampleRate indicates a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("tuner: invalid sample rate (must be > 0)")

	// ErrInvalidThreshold indicates the YIN threshold is outside (0, 1].
	ErrInvalidThreshold = errors.New("tuner: invalid YIN threshold (must be in (0, 1])")

	// ErrEmptyPreset indicates a tuning preset with zero targets.
	ErrEmptyPreset = errors.New("tuner: tuning preset must have at least one target")

	// ErrPresetLengthMismatch indicates note_names and freqs have different
	// lengths.
	ErrPresetLengthMismatch = errors.New("tuner: note names and frequencies must have equal length")

	// ErrNonPositiveFrequency indicates a target frequency <= 0.
	ErrNonPositiveFrequency = errors.New("tuner: target frequencies must be strictly positive")

	// ErrDuplicateFrequency indicates two targets in the same preset share a
	// frequency; preset targets must be strictly positive and distinct.
	ErrDuplicateFrequency = errors.New("tuner: target frequencies within a preset must be distinct")

	// ErrUnknownPreset indicates a preset id that was never registered.
	// Detector.Push does not return it: with an unknown id, Push maps
	// against the detector's expected frequency instead.
	ErrUnknownPreset = errors.New("tuner: unknown tuning preset id")
)
