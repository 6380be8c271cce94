// ABOUTME: Pull-based render chain for oto playback
// ABOUTME: Applies offset, duration, loop region, rate and gain while streaming PCM
package graph

import (
	"encoding/binary"
	"io"
	"math"
	"sync/atomic"

	"github.com/waveplay-audio/waveplay-go/pkg/audio"
)

// Rendered output is always stereo float32
const outChannels = 2

// render streams a source node's audio as little-endian float32 stereo.
// It advances a fractional read position through the buffer by
// rate*bufRate/outRate frames per output frame, interpolating between
// neighboring frames, and applies the shared gain value as it goes.
type render struct {
	samples  []float32
	channels int
	frames   int
	gain     Gain

	step float64
	pos  float64 // fractional frame position in the buffer

	loop      bool
	loopStart float64 // frames
	loopEnd   float64 // frames

	end float64 // non-loop stop position, frames

	done atomic.Bool
}

// newRender builds the streaming state for one source node. Loop regions
// wrap at their true span, floored to a single frame when the region is
// empty, so audio never leaves [LoopStart, LoopEnd]. The transport's
// reported position uses a modulo span floored at one second instead, so
// for regions shorter than that the audible cycle runs faster than the
// reported ramp.
func newRender(buf *audio.Buffer, spec SourceSpec, out Gain, outRate int) *render {
	bufRate := float64(buf.SampleRate())
	r := &render{
		samples:  buf.Samples(),
		channels: buf.Channels(),
		frames:   buf.Frames(),
		gain:     out,
		step:     spec.Rate * bufRate / float64(outRate),
		pos:      spec.Offset * bufRate,
		loop:     spec.Loop,
	}
	if spec.Loop {
		r.loopStart = spec.LoopStart * bufRate
		r.loopEnd = spec.LoopEnd * bufRate
		if r.loopEnd <= r.loopStart {
			// Degenerate region holds a single frame
			r.loopEnd = r.loopStart + 1
		}
	} else {
		r.end = (spec.Offset + spec.Duration) * bufRate
		if r.end > float64(r.frames) {
			r.end = float64(r.frames)
		}
	}
	return r
}

func (r *render) Read(p []byte) (int, error) {
	if r.done.Load() {
		return 0, io.EOF
	}

	const frameBytes = outChannels * 4
	frames := len(p) / frameBytes
	if frames == 0 {
		return 0, nil
	}

	g := float32(r.gain.Value())
	n := 0
	for ; n < frames; n++ {
		if r.loop {
			for r.pos >= r.loopEnd {
				r.pos -= r.loopEnd - r.loopStart
			}
		} else if r.pos >= r.end {
			break
		}

		left, right := r.frameAt(r.pos)
		off := n * frameBytes
		binary.LittleEndian.PutUint32(p[off:], math.Float32bits(clampSample(left*g)))
		binary.LittleEndian.PutUint32(p[off+4:], math.Float32bits(clampSample(right*g)))
		r.pos += r.step
	}

	if n == 0 {
		r.done.Store(true)
		return 0, io.EOF
	}
	return n * frameBytes, nil
}

// exhausted reports whether a non-loop render has played out its range
func (r *render) exhausted() bool {
	return r.done.Load()
}

// frameAt samples the buffer at a fractional frame position with linear
// interpolation, mixed to stereo
func (r *render) frameAt(pos float64) (float32, float32) {
	i0 := int(pos)
	frac := float32(pos - float64(i0))
	l0, r0 := r.channelPair(i0)
	l1, r1 := r.channelPair(i0 + 1)
	return l0 + (l1-l0)*frac, r0 + (r1-r0)*frac
}

// channelPair reads frame i as a stereo pair. Out-of-range frames are
// silence; buffers with more than two channels are averaged down.
func (r *render) channelPair(i int) (float32, float32) {
	if i < 0 || i >= r.frames {
		return 0, 0
	}
	base := i * r.channels
	switch r.channels {
	case 1:
		s := r.samples[base]
		return s, s
	case 2:
		return r.samples[base], r.samples[base+1]
	default:
		var sum float32
		for ch := 0; ch < r.channels; ch++ {
			sum += r.samples[base+ch]
		}
		avg := sum / float32(r.channels)
		return avg, avg
	}
}

// clampSample keeps scaled samples inside [-1, 1] to prevent clipping
func clampSample(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
