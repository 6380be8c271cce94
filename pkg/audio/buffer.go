// ABOUTME: Core audio types for decoded PCM data
// ABOUTME: Defines Format and the immutable sample Buffer the engine plays from
package audio

// Format describes decoded PCM audio
type Format struct {
	SampleRate int
	Channels   int
}

// Buffer holds decoded PCM audio as interleaved float32 samples in [-1, 1].
// A Buffer is immutable once created; the engine, loaders and the playback
// graph share references to it and never modify the sample data.
type Buffer struct {
	samples []float32
	format  Format
}

// NewBuffer wraps interleaved samples in a Buffer. The slice is retained,
// not copied; callers hand over ownership.
func NewBuffer(samples []float32, format Format) *Buffer {
	return &Buffer{samples: samples, format: format}
}

// Samples returns the interleaved sample data. Callers must not modify it.
func (b *Buffer) Samples() []float32 {
	if b == nil {
		return nil
	}
	return b.samples
}

// Format returns the buffer's PCM format
func (b *Buffer) Format() Format {
	if b == nil {
		return Format{}
	}
	return b.format
}

// SampleRate returns samples per second per channel
func (b *Buffer) SampleRate() int {
	if b == nil {
		return 0
	}
	return b.format.SampleRate
}

// Channels returns the interleaved channel count
func (b *Buffer) Channels() int {
	if b == nil {
		return 0
	}
	return b.format.Channels
}

// Frames returns the number of sample frames (one sample per channel)
func (b *Buffer) Frames() int {
	if b == nil || b.format.Channels <= 0 {
		return 0
	}
	return len(b.samples) / b.format.Channels
}

// Duration returns the buffer length in seconds. A nil buffer has duration 0.
func (b *Buffer) Duration() float64 {
	if b == nil || b.format.SampleRate <= 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.format.SampleRate)
}

// SampleFromInt16 converts a signed 16-bit sample to normalized float32
func SampleFromInt16(v int16) float32 {
	return float32(v) / 32768
}

// SampleFromInt converts a signed integer sample of the given bit depth
// (8 to 32) to normalized float32
func SampleFromInt(v int, bitDepth int) float32 {
	if bitDepth <= 0 || bitDepth > 32 {
		return 0
	}
	return float32(float64(v) / float64(int64(1)<<(bitDepth-1)))
}
