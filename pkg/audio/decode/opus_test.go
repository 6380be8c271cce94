// ABOUTME: Tests for the Ogg Opus header probe
// ABOUTME: Verifies channel count extraction from OpusHead
package decode

import "testing"

func TestOpusChannels(t *testing.T) {
	page := append([]byte("OggS"), make([]byte, 24)...)
	page = append(page, []byte("OpusHead")...)
	page = append(page, 1, 2, 0x38, 0x01) // version, channels, pre-skip

	channels, err := opusChannels(page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if channels != 2 {
		t.Errorf("expected 2 channels, got %d", channels)
	}
}

func TestOpusChannelsMissingHeader(t *testing.T) {
	_, err := opusChannels([]byte("OggS\x00\x00\x00\x00"))
	if err == nil {
		t.Fatal("expected error for missing OpusHead, got nil")
	}
}

func TestOpusChannelsTruncatedHeader(t *testing.T) {
	_, err := opusChannels([]byte("OpusHead\x01"))
	if err == nil {
		t.Fatal("expected error for truncated OpusHead, got nil")
	}
}
