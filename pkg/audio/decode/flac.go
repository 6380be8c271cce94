// ABOUTME: FLAC audio decoder
// ABOUTME: Decodes complete FLAC payloads to normalized float32 PCM
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"github.com/waveplay-audio/waveplay-go/pkg/audio"
)

// FLACDecoder decodes FLAC audio
type FLACDecoder struct{}

// Decode converts a complete FLAC payload to a PCM buffer
func (d *FLACDecoder) Decode(data []byte) (*audio.Buffer, error) {
	stream, err := flac.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse flac stream: %w", err)
	}
	defer stream.Close()

	info := stream.Info
	channels := int(info.NChannels)
	bitDepth := int(info.BitsPerSample)
	if channels < 1 {
		return nil, errors.New("flac stream reports no channels")
	}

	samples := make([]float32, 0, int(info.NSamples)*channels)
	for {
		f, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("flac decode error: %w", err)
		}
		if len(f.Subframes) < channels {
			return nil, fmt.Errorf("flac frame has %d subframes, expected %d", len(f.Subframes), channels)
		}
		// Subframes hold one channel each; interleave them
		for i := 0; i < len(f.Subframes[0].Samples); i++ {
			for ch := 0; ch < channels; ch++ {
				samples = append(samples, audio.SampleFromInt(int(f.Subframes[ch].Samples[i]), bitDepth))
			}
		}
	}

	return audio.NewBuffer(samples, audio.Format{
		SampleRate: int(info.SampleRate),
		Channels:   channels,
	}), nil
}
