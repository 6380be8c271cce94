// ABOUTME: WAV audio decoder
// ABOUTME: Decodes RIFF/WAVE payloads to normalized float32 PCM
package decode

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-audio/wav"

	"github.com/waveplay-audio/waveplay-go/pkg/audio"
)

// WAVDecoder decodes RIFF/WAVE audio
type WAVDecoder struct{}

// Decode converts a complete WAV payload to a PCM buffer
func (d *WAVDecoder) Decode(data []byte) (*audio.Buffer, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, errors.New("wav decode error: not a valid RIFF/WAVE file")
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav decode error: %w", err)
	}

	bitDepth := int(dec.BitDepth)
	samples := make([]float32, len(pcm.Data))
	for i, v := range pcm.Data {
		samples[i] = audio.SampleFromInt(v, bitDepth)
	}

	return audio.NewBuffer(samples, audio.Format{
		SampleRate: pcm.Format.SampleRate,
		Channels:   pcm.Format.NumChannels,
	}), nil
}
