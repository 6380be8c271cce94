// ABOUTME: Simple linear resampler for converting audio sample rates
// ABOUTME: Used by the loaders to honor a requested target sample rate
package resample

import "github.com/waveplay-audio/waveplay-go/pkg/audio"

// Resampler performs linear interpolation to convert between sample rates
type Resampler struct {
	inputRate  int
	outputRate int
	channels   int
	ratio      float64
	position   float64
}

// New creates a new resampler
func New(inputRate, outputRate, channels int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		channels:   channels,
		ratio:      float64(inputRate) / float64(outputRate),
	}
}

// Resample converts interleaved input samples at inputRate to interleaved
// output samples at outputRate using linear interpolation. Returns the
// number of output samples written.
func (r *Resampler) Resample(input, output []float32) int {
	if len(input) == 0 || r.channels <= 0 {
		return 0
	}

	inputFrames := len(input) / r.channels
	outputFrames := len(output) / r.channels

	outIdx := 0
	for outIdx < outputFrames {
		inputPos := r.position
		inputIdx := int(inputPos)

		if inputIdx >= inputFrames-1 {
			break
		}

		frac := float32(inputPos - float64(inputIdx))
		for ch := 0; ch < r.channels; ch++ {
			s1 := input[inputIdx*r.channels+ch]
			s2 := input[(inputIdx+1)*r.channels+ch]
			output[outIdx*r.channels+ch] = s1*(1-frac) + s2*frac
		}

		outIdx++
		r.position += r.ratio
	}

	// Keep the fractional remainder for the next chunk
	r.position -= float64(int(r.position))

	return outIdx * r.channels
}

// OutputSamplesNeeded calculates how many output samples the given number
// of input samples will produce
func (r *Resampler) OutputSamplesNeeded(inputSamples int) int {
	if r.channels <= 0 {
		return 0
	}
	inputFrames := inputSamples / r.channels
	outputFrames := int(float64(inputFrames) / r.ratio)
	return outputFrames * r.channels
}

// Apply returns buf converted to outputRate. The original buffer is
// returned unchanged when no conversion is needed.
func Apply(buf *audio.Buffer, outputRate int) *audio.Buffer {
	if buf == nil || outputRate <= 0 || buf.SampleRate() == outputRate || buf.Channels() <= 0 {
		return buf
	}

	r := New(buf.SampleRate(), outputRate, buf.Channels())
	output := make([]float32, r.OutputSamplesNeeded(len(buf.Samples())))
	n := r.Resample(buf.Samples(), output)

	return audio.NewBuffer(output[:n], audio.Format{
		SampleRate: outputRate,
		Channels:   buf.Channels(),
	})
}
