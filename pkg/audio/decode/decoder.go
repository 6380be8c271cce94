// ABOUTME: Decoder interface and format dispatch
// ABOUTME: Common interface for all full-payload audio decoders
package decode

import (
	"fmt"

	"github.com/waveplay-audio/waveplay-go/pkg/audio"
)

// Supported format names, as returned by Detect and accepted by New.
const (
	FormatMP3    = "mp3"
	FormatWAV    = "wav"
	FormatFLAC   = "flac"
	FormatVorbis = "vorbis"
	FormatOpus   = "opus"
)

// Decoder decodes a complete encoded payload to normalized float32 PCM
type Decoder interface {
	// Decode converts encoded audio data to a PCM buffer
	Decode(data []byte) (*audio.Buffer, error)
}

// New creates a decoder for the named format
func New(format string) (Decoder, error) {
	switch format {
	case FormatMP3:
		return &MP3Decoder{}, nil
	case FormatWAV:
		return &WAVDecoder{}, nil
	case FormatFLAC:
		return &FLACDecoder{}, nil
	case FormatVorbis:
		return &VorbisDecoder{}, nil
	case FormatOpus:
		return &OpusDecoder{}, nil
	default:
		return nil, fmt.Errorf("decode: unsupported format %q", format)
	}
}

// Decode detects the payload's format and decodes it. It is the one-stop
// entry point used by the loaders; failures are always explicit errors,
// never silent.
func Decode(data []byte) (*audio.Buffer, error) {
	format, err := Detect(data)
	if err != nil {
		return nil, err
	}
	dec, err := New(format)
	if err != nil {
		return nil, err
	}
	buf, err := dec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	return buf, nil
}
