// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, Buffer and sample conversion functions
// Package audio provides the fundamental audio types shared across the
// waveplay library.
//
// The central type is Buffer: decoded PCM audio held as interleaved float32
// samples normalized to [-1, 1], together with its Format (sample rate and
// channel count). Buffers are produced by the decode and load packages and
// consumed by the playback graph; they are immutable once created.
//
// Sample conversion helpers normalize integer PCM of any common bit depth:
//
//	f := audio.SampleFromInt16(sample16)
//	f := audio.SampleFromInt(sample24, 24)
//
// Example:
//
//	buf := audio.NewBuffer(samples, audio.Format{
//	    SampleRate: 44100,
//	    Channels:   2,
//	})
//	fmt.Printf("%.2f seconds\n", buf.Duration())
package audio
