// Package tuner implements a real-time monophonic pitch detection engine
// for stringed-instrument tuning. It ingests fixed-size chunks of
// single-channel float32 PCM samples and emits, block by block, the
// estimated fundamental frequency together with a tuning report (nearest
// note, signed cents offset, confidence, signal level).
//
// The engine is single-threaded and cooperative: every call is synchronous
// and bounded by the detector's configured block size, no goroutines are
// started, and no state is shared across Detector instances. It is built
// to run inside a sandboxed host with no filesystem or network access; the
// host owns audio acquisition and simply calls Push with whatever chunk
// size its callback delivers.
//
// # Pipeline
//
// Each Detector runs the same fixed pipeline over every completed
// analysis block:
//
//   - a ring accumulator (internal/ringbuf) assembles fixed-size quanta
//     into a power-of-two analysis block and signals when one is ready;
//   - a biquad filter bank (internal/biquad) removes mains hum and
//     out-of-band content in a configurable cascade;
//   - an optional AGC (internal/agc) normalises block level;
//   - a YIN estimator (internal/yin) produces a raw frequency and clarity;
//   - an optional FFT refinement stage (internal/fft) sharpens the
//     estimate using a windowed, zero-padded spectrum;
//   - an optional octave/harmonic corrector (internal/corrector) resolves
//     octave and harmonic lock-on against an expected target frequency;
//   - a temporal smoothing layer (internal/smoothing) applies a moving
//     average, a clarity EMA, and an outlier gate;
//   - the tuning mapper (Map) reports the nearest note in the active
//     TuningPreset and the signed cents offset.
//
// A Selector composes a second, wide-band Detector with a voting FIFO to
// decide which target frequency in the active preset the host's
// narrow-band detector should track, switching it as the played string
// changes.
//
// Construction-time misconfiguration (invalid block size, inverted
// frequency band, bad threshold) is reported as an error and is fatal to
// the Detector being built. Runtime outcomes are never errors: Push
// returns (PitchReport{}, false) for silence, low clarity, an out-of-band
// estimate, an outlier, or numeric instability, and LastRejection reports
// which.
package tuner
