// Package audioio reads and writes mono PCM WAV files as core.Signal values.
package audioio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-denoise/dsp/core"
	"github.com/cwbudde/algo-denoise/dsp/signal"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	// OutputBitDepth is the sample width written by Save.
	OutputBitDepth = 16

	fullScale16 = 32767

	wavFormatPCM = 1
)

var (
	// ErrInvalidWAV is returned when the input is not a RIFF/WAVE stream.
	ErrInvalidWAV = errors.New("audioio: invalid WAV file")
	// ErrMultiChannel is returned for inputs with more than one channel.
	ErrMultiChannel = errors.New("audioio: only mono input is supported")
	// ErrUnsupportedFormat is returned for non-PCM encodings.
	ErrUnsupportedFormat = errors.New("audioio: unsupported WAV encoding")
)

// Info describes a decoded file.
type Info struct {
	SampleRate int
	BitDepth   int
	Channels   int
	// Peak is the largest absolute integer sample before normalization.
	Peak int
}

// Load reads a mono PCM WAV file and divides every sample by the file's own
// peak, so the loudest sample is at +-1. A silent file loads as zeros.
func Load(path string) (core.Signal, error) {
	sig, _, err := LoadWithInfo(path)
	return sig, err
}

// LoadWithInfo is Load that also returns the file's format details.
func LoadWithInfo(path string) (core.Signal, Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.Signal{}, Info{}, fmt.Errorf("audioio: open %s: %w", path, err)
	}
	defer f.Close()

	sig, info, err := Decode(f)
	if err != nil {
		return core.Signal{}, Info{}, fmt.Errorf("audioio: %s: %w", path, err)
	}
	return sig, info, nil
}

// Decode reads a WAV stream. See Load for the normalization rule.
func Decode(r io.ReadSeeker) (core.Signal, Info, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return core.Signal{}, Info{}, ErrInvalidWAV
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return core.Signal{}, Info{}, fmt.Errorf("read PCM: %w", err)
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return core.Signal{}, Info{}, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}
	if buf.Format == nil || buf.Format.NumChannels != 1 {
		ch := 0
		if buf.Format != nil {
			ch = buf.Format.NumChannels
		}
		return core.Signal{}, Info{}, fmt.Errorf("%w: %d channels", ErrMultiChannel, ch)
	}

	info := Info{
		SampleRate: buf.Format.SampleRate,
		BitDepth:   buf.SourceBitDepth,
		Channels:   1,
	}

	samples := make([]float64, len(buf.Data))
	for _, v := range buf.Data {
		info.Peak = max(info.Peak, abs(v))
	}
	if info.Peak > 0 {
		scale := 1 / float64(info.Peak)
		for i, v := range buf.Data {
			samples[i] = float64(v) * scale
		}
	}

	sig := core.NewSignal(samples, info.SampleRate)
	if err := sig.Validate(); err != nil {
		return core.Signal{}, Info{}, err
	}
	return sig, info, nil
}

// Save writes sig as 16-bit mono PCM, scaled so its peak maps to 32767.
// The parent directory is created if needed. A signal with zero peak
// returns core.ErrDegenerateNormalization and nothing is written.
func Save(path string, sig core.Signal) error {
	if err := sig.Validate(); err != nil {
		return fmt.Errorf("audioio: %s: %w", path, err)
	}
	data, err := Quantize16(sig.Samples)
	if err != nil {
		return fmt.Errorf("audioio: %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("audioio: create %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audioio: create %s: %w", path, err)
	}

	if err := encode(f, sig.SampleRate, data); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("audioio: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("audioio: close %s: %w", path, err)
	}
	return nil
}

// Encode writes sig to w with the same scaling as Save.
func Encode(w io.WriteSeeker, sig core.Signal) error {
	if err := sig.Validate(); err != nil {
		return err
	}
	data, err := Quantize16(sig.Samples)
	if err != nil {
		return err
	}
	return encode(w, sig.SampleRate, data)
}

func encode(w io.WriteSeeker, sampleRate int, data []int) error {
	enc := wav.NewEncoder(w, sampleRate, OutputBitDepth, 1, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: OutputBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

// Quantize16 maps samples to 16-bit integers as round(x / max|x| * 32767).
func Quantize16(samples []float64) ([]int, error) {
	norm, err := signal.Normalize(samples, fullScale16)
	if err != nil {
		return nil, err
	}

	out := make([]int, len(norm))
	for i, v := range norm {
		out[i] = int(math.Round(v))
	}
	return out, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
