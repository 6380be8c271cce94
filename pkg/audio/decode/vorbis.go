// ABOUTME: Ogg Vorbis audio decoder
// ABOUTME: Decodes complete Ogg Vorbis payloads to normalized float32 PCM
package decode

import (
	"bytes"
	"fmt"

	"github.com/jfreymuth/oggvorbis"

	"github.com/waveplay-audio/waveplay-go/pkg/audio"
)

// VorbisDecoder decodes Ogg Vorbis audio
type VorbisDecoder struct{}

// Decode converts a complete Ogg Vorbis payload to a PCM buffer
func (d *VorbisDecoder) Decode(data []byte) (*audio.Buffer, error) {
	samples, format, err := oggvorbis.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("vorbis decode error: %w", err)
	}

	return audio.NewBuffer(samples, audio.Format{
		SampleRate: format.SampleRate,
		Channels:   format.Channels,
	}), nil
}
