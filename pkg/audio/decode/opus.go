// ABOUTME: Ogg Opus audio decoder
// ABOUTME: Decodes complete Ogg Opus payloads to normalized float32 PCM
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	opus "gopkg.in/hraban/opus.v2"

	"github.com/waveplay-audio/waveplay-go/pkg/audio"
)

// libopusfile always decodes to 48 kHz regardless of the encoded rate
const opusDecodeRate = 48000

// OpusDecoder decodes Ogg Opus audio
type OpusDecoder struct{}

// Decode converts a complete Ogg Opus payload to a PCM buffer
func (d *OpusDecoder) Decode(data []byte) (*audio.Buffer, error) {
	stream, err := opus.NewStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open opus stream: %w", err)
	}
	defer stream.Close()

	// The stream API does not expose the channel count; read it from the
	// OpusHead identification header (channel count lives at byte 9).
	channels, err := opusChannels(data)
	if err != nil {
		return nil, err
	}

	samples := make([]float32, 0, opusDecodeRate*channels)
	pcm := make([]float32, 4096*channels)
	for {
		n, err := stream.ReadFloat32(pcm)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("opus decode error: %w", err)
		}
		if n == 0 {
			break
		}
		samples = append(samples, pcm[:n*channels]...)
	}

	return audio.NewBuffer(samples, audio.Format{
		SampleRate: opusDecodeRate,
		Channels:   channels,
	}), nil
}

func opusChannels(data []byte) (int, error) {
	idx := bytes.Index(data, []byte("OpusHead"))
	if idx < 0 || idx+9 >= len(data) {
		return 0, errors.New("opus stream missing OpusHead header")
	}
	channels := int(data[idx+9])
	if channels < 1 {
		return 0, fmt.Errorf("opus stream reports %d channels", channels)
	}
	return channels, nil
}
