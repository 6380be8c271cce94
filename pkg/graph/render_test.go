// ABOUTME: Tests for the render chain
// ABOUTME: Verifies range, loop, rate, gain and channel mixing sample by sample
package graph

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/waveplay-audio/waveplay-go/pkg/audio"
)

// monoRampBuffer returns a mono buffer where frame i holds i/10
func monoRampBuffer(rate, frames int) *audio.Buffer {
	samples := make([]float32, frames)
	for i := range samples {
		samples[i] = float32(i) / 10
	}
	return audio.NewBuffer(samples, audio.Format{SampleRate: rate, Channels: 1})
}

// readFrames reads up to maxFrames stereo frames in small chunks and
// returns the decoded float32 samples. The render may advance past
// maxFrames internally; the returned slice is trimmed to it.
func readFrames(t *testing.T, r *render, maxFrames int) []float32 {
	t.Helper()

	const frameBytes = outChannels * 4
	var out []float32
	chunk := make([]byte, 4*frameBytes)

	for len(out)/outChannels < maxFrames {
		n, err := r.Read(chunk)
		for i := 0; i < n; i += 4 {
			out = append(out, math.Float32frombits(binary.LittleEndian.Uint32(chunk[i:])))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("unexpected read error: %v", err)
		}
	}
	if len(out) > maxFrames*outChannels {
		out = out[:maxFrames*outChannels]
	}
	return out
}

func checkSamples(t *testing.T, got, expected []float32) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("expected %d samples, got %d", len(expected), len(got))
	}
	for i, want := range expected {
		if math.Abs(float64(got[i]-want)) > 1e-6 {
			t.Errorf("sample %d: expected %v, got %v", i, want, got[i])
		}
	}
}

func testGain(value float64) Gain {
	g := &otoGain{}
	g.Set(value)
	return g
}

func TestRenderPlaysBoundedRange(t *testing.T) {
	buf := monoRampBuffer(100, 10)
	r := newRender(buf, SourceSpec{Rate: 1, Offset: 0.05, Duration: 0.03}, testGain(1), 100)

	got := readFrames(t, r, 100)
	checkSamples(t, got, []float32{0.5, 0.5, 0.6, 0.6, 0.7, 0.7})

	if !r.exhausted() {
		t.Error("expected render to be exhausted after draining its range")
	}
	if n, err := r.Read(make([]byte, 64)); n != 0 || err != io.EOF {
		t.Errorf("expected (0, EOF) after exhaustion, got (%d, %v)", n, err)
	}
}

func TestRenderRateScalesStep(t *testing.T) {
	buf := monoRampBuffer(100, 10)
	r := newRender(buf, SourceSpec{Rate: 2, Offset: 0, Duration: 0.1}, testGain(1), 100)

	got := readFrames(t, r, 100)
	checkSamples(t, got, []float32{0, 0, 0.2, 0.2, 0.4, 0.4, 0.6, 0.6, 0.8, 0.8})
}

func TestRenderConvertsBufferRate(t *testing.T) {
	// Buffer at twice the device rate advances two source frames per
	// output frame even at rate 1
	buf := monoRampBuffer(200, 10)
	r := newRender(buf, SourceSpec{Rate: 1, Offset: 0, Duration: 0.05}, testGain(1), 100)

	got := readFrames(t, r, 100)
	checkSamples(t, got, []float32{0, 0, 0.2, 0.2, 0.4, 0.4, 0.6, 0.6, 0.8, 0.8})
}

func TestRenderInterpolatesBetweenFrames(t *testing.T) {
	buf := audio.NewBuffer([]float32{0, 1}, audio.Format{SampleRate: 100, Channels: 1})
	r := newRender(buf, SourceSpec{Rate: 1, Offset: 0, Duration: 0.02}, testGain(1), 200)

	// Positions 0, 0.5, 1.0, 1.5; the last interpolates toward silence
	got := readFrames(t, r, 100)
	checkSamples(t, got, []float32{0, 0, 0.5, 0.5, 1, 1, 0.5, 0.5})
}

func TestRenderLoopWrapsRegion(t *testing.T) {
	buf := monoRampBuffer(100, 10)
	r := newRender(buf, SourceSpec{Rate: 1, Offset: 0, Loop: true, LoopStart: 0.02, LoopEnd: 0.05}, testGain(1), 100)

	// Ramps from the offset into the region, then cycles frames 2,3,4
	got := readFrames(t, r, 8)
	checkSamples(t, got, []float32{
		0, 0, 0.1, 0.1, 0.2, 0.2, 0.3, 0.3,
		0.4, 0.4, 0.2, 0.2, 0.3, 0.3, 0.4, 0.4,
	})

	if r.exhausted() {
		t.Error("loop render must never exhaust")
	}
}

func TestRenderGainAppliesHot(t *testing.T) {
	buf := monoRampBuffer(100, 10)
	g := testGain(0.5)
	r := newRender(buf, SourceSpec{Rate: 1, Offset: 0, Duration: 0.1}, g, 100)

	first := readFrames(t, r, 2)
	checkSamples(t, first, []float32{0, 0, 0.05, 0.05})

	g.Set(0)
	second := readFrames(t, r, 2)
	checkSamples(t, second, []float32{0, 0, 0, 0})
}

func TestRenderClampsScaledSamples(t *testing.T) {
	buf := audio.NewBuffer([]float32{0.9, 0.9}, audio.Format{SampleRate: 100, Channels: 1})
	r := newRender(buf, SourceSpec{Rate: 1, Offset: 0, Duration: 0.02}, testGain(2), 100)

	got := readFrames(t, r, 2)
	checkSamples(t, got, []float32{1, 1, 1, 1})
}

func TestRenderStereoPassthrough(t *testing.T) {
	buf := audio.NewBuffer([]float32{0.1, -0.1, 0.2, -0.2}, audio.Format{SampleRate: 100, Channels: 2})
	r := newRender(buf, SourceSpec{Rate: 1, Offset: 0, Duration: 0.02}, testGain(1), 100)

	got := readFrames(t, r, 2)
	checkSamples(t, got, []float32{0.1, -0.1, 0.2, -0.2})
}

func TestRenderOffsetBeyondBufferPlaysNothing(t *testing.T) {
	buf := monoRampBuffer(100, 10)
	r := newRender(buf, SourceSpec{Rate: 1, Offset: 1.0, Duration: 0.1}, testGain(1), 100)

	got := readFrames(t, r, 100)
	if len(got) != 0 {
		t.Fatalf("expected no samples, got %d", len(got))
	}
	if !r.exhausted() {
		t.Error("expected immediate exhaustion")
	}
}

func TestRenderDegenerateLoopHoldsSingleFrame(t *testing.T) {
	buf := monoRampBuffer(100, 10)
	r := newRender(buf, SourceSpec{Rate: 1, Offset: 0.03, Loop: true, LoopStart: 0.03, LoopEnd: 0.03}, testGain(1), 100)

	got := readFrames(t, r, 3)
	checkSamples(t, got, []float32{0.3, 0.3, 0.3, 0.3, 0.3, 0.3})
}
