// ABOUTME: Container and codec detection from magic bytes
// ABOUTME: Maps raw payload prefixes to decoder format names
package decode

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrUnknownFormat indicates the payload matched no supported container
var ErrUnknownFormat = errors.New("decode: unrecognized audio format")

// Ogg pages carry the codec tag in the first packet, within the head of
// the payload. 512 bytes is more than enough to cover the first page.
const oggProbeLen = 512

// Detect inspects a payload's leading bytes and returns its format name
func Detect(data []byte) (string, error) {
	switch {
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return FormatWAV, nil
	case len(data) >= 4 && bytes.Equal(data[0:4], []byte("fLaC")):
		return FormatFLAC, nil
	case len(data) >= 4 && bytes.Equal(data[0:4], []byte("OggS")):
		probe := data
		if len(probe) > oggProbeLen {
			probe = probe[:oggProbeLen]
		}
		if bytes.Contains(probe, []byte("OpusHead")) {
			return FormatOpus, nil
		}
		if bytes.Contains(probe, []byte("\x01vorbis")) {
			return FormatVorbis, nil
		}
		return "", fmt.Errorf("decode: ogg container with unsupported codec: %w", ErrUnknownFormat)
	case len(data) >= 3 && bytes.Equal(data[0:3], []byte("ID3")):
		return FormatMP3, nil
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		// Bare MPEG audio frame sync, no ID3 tag
		return FormatMP3, nil
	default:
		return "", ErrUnknownFormat
	}
}
