// Command tunerdemo drives the tuner engine against a WAV file, feeding it
// fixed-size quanta the way a real audio callback would and printing every
// PitchReport it emits. It exists to exercise the public API end to end and
// is a minimal stand-in for real audio acquisition and UI, neither of which
// the engine itself handles.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tuner "github.com/jphollanti/nofuzz-tuner-go"
)

func main() {
	wavPath := flag.String("wav", "", "path to a 16-bit PCM mono WAV file")
	preset := flag.String("preset", "standard_guitar", "tuning preset id")
	chunk := flag.Int("chunk", 128, "samples per simulated audio callback")
	blockSize := flag.Int("block", 4096, "analysis block size (power of two, 1024-32768)")
	threshold := flag.Float64("threshold", 0.1, "YIN absolute threshold")
	fMin := flag.Float64("fmin", 70, "lower frequency bound, Hz")
	fMax := flag.Float64("fmax", 350, "upper frequency bound, Hz")
	flag.Parse()

	if *wavPath == "" {
		log.Fatal("usage: tunerdemo -wav <file.wav>")
	}

	f, err := os.Open(*wavPath)
	if err != nil {
		log.Fatalf("open %s: %v", *wavPath, err)
	}
	defer f.Close()

	samples, sampleRate, err := readWAV(f)
	if err != nil {
		log.Fatalf("read wav: %v", err)
	}

	d, err := tuner.NewDetector(*threshold, *fMin, *fMax, sampleRate, *blockSize,
		tuner.MaskHighpass|tuner.MaskNotch50|tuner.MaskNotch60|tuner.MaskLowpass,
		tuner.FeatureMovingAverage|tuner.FeatureClarityEMA|tuner.FeatureAGC,
		5, 0.25)
	if err != nil {
		log.Fatalf("new detector: %v", err)
	}
	d.SetAGC(true, 0.2)

	for i := 0; i < len(samples); i += *chunk {
		end := i + *chunk
		if end > len(samples) {
			end = len(samples)
		}
		report, ok := d.Push(samples[i:end], *preset)
		if !ok {
			continue
		}
		fmt.Printf("freq=%.2fHz clarity=%.3f confidence=%.3f rms=%.4f -> %s (%.2fHz, %+.1f cents)\n",
			report.Frequency, report.Clarity, report.Confidence, report.RMS,
			report.Tuning.Note, report.Tuning.Target, report.Tuning.Cents)
	}
}

// waveHeader mirrors the canonical 44-byte PCM WAV header layout.
type waveHeader struct {
	ChunkID       [4]byte
	ChunkSize     uint32
	Format        [4]byte
	Subchunk1ID   [4]byte
	Subchunk1Size uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Subchunk2ID   [4]byte
	Subchunk2Size uint32
}

// readWAV parses a canonical, non-extensible 16-bit PCM WAV file (mono or
// stereo, downmixed to mono by averaging channels) and returns the samples
// normalised to [-1, 1] and the file's sample rate.
func readWAV(r io.Reader) ([]float32, float64, error) {
	var hdr waveHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, 0, err
	}
	if string(hdr.ChunkID[:]) != "RIFF" || string(hdr.Format[:]) != "WAVE" {
		return nil, 0, fmt.Errorf("not a RIFF/WAVE file")
	}
	if hdr.AudioFormat != 1 || hdr.BitsPerSample != 16 {
		return nil, 0, fmt.Errorf("only 16-bit PCM WAV is supported")
	}

	raw := make([]byte, hdr.Subchunk2Size)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, 0, err
	}

	channels := int(hdr.NumChannels)
	if channels < 1 {
		channels = 1
	}
	frames := len(raw) / 2 / channels
	samples := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum int32
		for c := 0; c < channels; c++ {
			off := (i*channels + c) * 2
			v := int16(binary.LittleEndian.Uint16(raw[off : off+2]))
			sum += int32(v)
		}
		samples[i] = float32(sum) / float32(channels) / 32768.0
	}
	return samples, float64(hdr.SampleRate), nil
}
