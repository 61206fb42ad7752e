// Package wavio loads and saves mono float32 clips as WAV files
package wavio

import "errors"
import "fmt"
import "os"

import "github.com/go-audio/audio"
import "github.com/go-audio/wav"

// Load reads a WAV file as a normalized mono clip, averaging channels down
// to one and scaling by the source bit depth
func Load(name string) (samples []float32, rate int, err error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()

	dec := wav.NewDecoder(file)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("wavio: decode %s: %w", name, err)
	}
	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, 0, errors.New("wavio: no channels")
	}
	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = 16
	}
	scale := float32(int(1) << (depth - 1))
	frames := len(buf.Data) / channels
	if frames == 0 {
		return nil, 0, errors.New("wavio: empty clip")
	}
	samples = make([]float32, frames)
	for i := 0; i < frames; i++ {
		var acc float32
		for c := 0; c < channels; c++ {
			acc += float32(buf.Data[i*channels+c]) / scale
		}
		samples[i] = acc / float32(channels)
	}
	return samples, buf.Format.SampleRate, nil
}

// Save writes a mono clip as a 16-bit PCM WAV file, clamping to [-1, 1]
func Save(name string, samples []float32, rate int) error {
	if len(samples) == 0 {
		return errors.New("wavio: empty clip")
	}
	file, err := os.Create(name)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(file, rate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		Data:           make([]int, len(samples)),
		SourceBitDepth: 16,
	}
	for i, v := range samples {
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		buf.Data[i] = int(v * 32767)
	}
	err = enc.Write(buf)
	if err != nil {
		file.Close()
		return err
	}
	err = enc.Close()
	if err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
