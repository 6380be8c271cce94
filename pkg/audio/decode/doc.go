// ABOUTME: Audio decoder package for multiple codec support
// ABOUTME: Provides Decoder interface and implementations for MP3, WAV, FLAC, Vorbis, Opus
// Package decode provides full-payload audio decoders for the formats the
// engine can load.
//
// Supports: MP3, WAV (RIFF/WAVE), FLAC, Ogg Vorbis, Ogg Opus.
//
// All decoders implement the Decoder interface and output interleaved
// float32 samples normalized to [-1, 1]. Detect sniffs a payload's format
// from its magic bytes, and Decode combines detection and decoding:
//
//	buf, err := decode.Decode(data)
//	if err != nil {
//	    // malformed or unsupported payloads always error, never hang
//	}
package decode
