package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f64"

	"github.com/cwbudde/algo-vochorus/dsp/vochorus"
)

const (
	outputBitDepth = 16
	maxInt16       = 32767.0
	wavFormatPCM   = 1
)

// loadSample decodes a PCM WAV file and mixes it down to mono in [-1, 1].
func loadSample(path string) (vochorus.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return vochorus.Sample{}, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return vochorus.Sample{}, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return vochorus.Sample{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	channels := max(1, buf.Format.NumChannels)
	scale := 1 / fullScale(int(dec.BitDepth))

	frames := len(buf.Data) / channels
	data := make([]float64, frames)

	for i := range frames {
		var sum int
		for c := range channels {
			sum += buf.Data[i*channels+c]
		}
		data[i] = float64(sum) * scale / float64(channels)
	}

	return vochorus.Sample{Data: data, Rate: float64(buf.Format.SampleRate)}, nil
}

// writeWAV writes one or two channels as 16-bit PCM.
func writeWAV(path string, sampleRate int, channels [][]float64) error {
	var interleaved []float64

	switch len(channels) {
	case 1:
		interleaved = channels[0]
	case 2:
		interleaved = make([]float64, 2*len(channels[0]))
		f64.Interleave2(interleaved, channels[0], channels[1])
	default:
		return fmt.Errorf("unsupported channel count %d", len(channels))
	}

	pcm := make([]int, len(interleaved))
	for i, v := range interleaved {
		pcm[i] = int(math.Round(math.Max(-1, math.Min(1, v)) * maxInt16))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	enc := wav.NewEncoder(f, sampleRate, outputBitDepth, len(channels), wavFormatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: len(channels), SampleRate: sampleRate},
		Data:           pcm,
		SourceBitDepth: outputBitDepth,
	}

	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write WAV data: %w", err)
	}

	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to finalize WAV file: %w", err)
	}

	return f.Close()
}

func fullScale(bitDepth int) float64 {
	switch bitDepth {
	case 24:
		return 8388607
	case 32:
		return 2147483647
	default:
		return maxInt16
	}
}
