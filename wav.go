package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// ErrDecode is returned when a file cannot be opened or is not a PCM WAV file.
var ErrDecode = errors.New("wav decode error")

// WAV format tags accepted by the loader. IEEE float (3) and compressed
// encodings decode to meaningless integers and are rejected.
const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// ErrNoSamples is returned when the two signals share no samples.
var ErrNoSamples = errors.New("no samples to compare")

// Signal holds decoded PCM samples. Samples are interleaved until
// FirstChannel is applied.
type Signal struct {
	SampleRate  int
	NumChannels int
	BitDepth    int
	Samples     []float64
}

// Frames returns the number of sample frames in the signal
func (s *Signal) Frames() int {
	if s.NumChannels <= 1 {
		return len(s.Samples)
	}
	return len(s.Samples) / s.NumChannels
}

// FirstChannel, returns a mono signal holding only channel 0
func (s *Signal) FirstChannel() *Signal {
	if s.NumChannels <= 1 {
		return s
	}

	mono := make([]float64, s.Frames())
	for i := range mono {
		mono[i] = s.Samples[i*s.NumChannels]
	}

	return &Signal{
		SampleRate:  s.SampleRate,
		NumChannels: 1,
		BitDepth:    s.BitDepth,
		Samples:     mono,
	}
}

// readWavFile, reads a WAV audio file into a Signal without normalising sample values
func readWavFile(path string) (*Signal, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open file: %v", ErrDecode, err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%w: %s is not a valid WAV file", ErrDecode, path)
	}
	if decoder.WavAudioFormat != wavFormatPCM && decoder.WavAudioFormat != wavFormatExtensible {
		return nil, fmt.Errorf("%w: %s is not a PCM WAV file", ErrDecode, path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: could not read PCM buffer: %v", ErrDecode, err)
	}
	if decoder.NumChans < 1 || decoder.SampleRate < 1 {
		return nil, fmt.Errorf("%w: %s has an invalid format chunk", ErrDecode, path)
	}

	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v)
	}

	return &Signal{
		SampleRate:  int(decoder.SampleRate),
		NumChannels: int(decoder.NumChans),
		BitDepth:    int(decoder.BitDepth),
		Samples:     samples,
	}, nil
}

// alignSignals truncates both signals to their common prefix.
func alignSignals(in, out []float64) ([]float64, []float64) {
	n := min(len(in), len(out))
	return in[:n], out[:n]
}

// min returns the smaller of a and b
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
