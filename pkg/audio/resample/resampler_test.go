// ABOUTME: Tests for the linear resampler
// ABOUTME: Verifies interpolation, ratios and the whole-buffer Apply helper
package resample

import (
	"math"
	"testing"

	"github.com/waveplay-audio/waveplay-go/pkg/audio"
)

func TestResampleUpsampleInterpolates(t *testing.T) {
	r := New(44100, 88200, 1)
	input := []float32{0, 1}
	output := make([]float32, 4)

	n := r.Resample(input, output)
	if n != 2 {
		t.Fatalf("expected 2 output samples, got %d", n)
	}
	if output[0] != 0 {
		t.Errorf("expected first sample 0, got %v", output[0])
	}
	if math.Abs(float64(output[1]-0.5)) > 1e-6 {
		t.Errorf("expected interpolated sample 0.5, got %v", output[1])
	}
}

func TestResampleDownsample(t *testing.T) {
	r := New(48000, 24000, 1)
	input := []float32{0, 1, 2, 3, 4, 5}
	output := make([]float32, 6)

	n := r.Resample(input, output)
	if n != 3 {
		t.Fatalf("expected 3 output samples, got %d", n)
	}
	expected := []float32{0, 2, 4}
	for i, want := range expected {
		if output[i] != want {
			t.Errorf("sample %d: expected %v, got %v", i, want, output[i])
		}
	}
}

func TestResampleStereoKeepsChannelsIndependent(t *testing.T) {
	r := New(44100, 88200, 2)
	input := []float32{0, 1, 1, 0} // L ramps up, R ramps down
	output := make([]float32, 8)

	n := r.Resample(input, output)
	if n != 4 {
		t.Fatalf("expected 4 output samples, got %d", n)
	}
	if math.Abs(float64(output[2]-0.5)) > 1e-6 || math.Abs(float64(output[3]-0.5)) > 1e-6 {
		t.Errorf("expected midpoint frame (0.5, 0.5), got (%v, %v)", output[2], output[3])
	}
}

func TestResampleEmptyInput(t *testing.T) {
	r := New(44100, 48000, 2)
	if n := r.Resample(nil, make([]float32, 16)); n != 0 {
		t.Errorf("expected 0 samples for empty input, got %d", n)
	}
}

func TestOutputSamplesNeeded(t *testing.T) {
	tests := []struct {
		name       string
		inputRate  int
		outputRate int
		channels   int
		input      int
		expected   int
	}{
		{"same rate", 44100, 44100, 2, 1000, 1000},
		{"double rate", 22050, 44100, 2, 1000, 2000},
		{"half rate", 44100, 22050, 1, 1000, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.inputRate, tt.outputRate, tt.channels)
			if got := r.OutputSamplesNeeded(tt.input); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestOutputSamplesNeededZeroChannels(t *testing.T) {
	r := New(44100, 48000, 0)
	if got := r.OutputSamplesNeeded(100); got != 0 {
		t.Errorf("expected 0 for a zero-channel resampler, got %d", got)
	}
	if n := r.Resample(make([]float32, 10), make([]float32, 16)); n != 0 {
		t.Errorf("expected 0 samples for a zero-channel resampler, got %d", n)
	}
}

func TestApplyConvertsRate(t *testing.T) {
	samples := make([]float32, 44100)
	for i := range samples {
		samples[i] = float32(math.Sin(2 * math.Pi * 440 * float64(i) / 44100))
	}
	buf := audio.NewBuffer(samples, audio.Format{SampleRate: 44100, Channels: 1})

	out := resampleApply(t, buf, 22050)
	if got := out.SampleRate(); got != 22050 {
		t.Errorf("expected sample rate 22050, got %d", got)
	}
	// Half the frames, give or take the final interpolation frame
	if frames := out.Frames(); frames < 22049 || frames > 22050 {
		t.Errorf("expected about 22050 frames, got %d", frames)
	}
}

func resampleApply(t *testing.T, buf *audio.Buffer, rate int) *audio.Buffer {
	t.Helper()
	out := Apply(buf, rate)
	if out == nil {
		t.Fatal("expected buffer from Apply, got nil")
	}
	return out
}

func TestApplySameRateReturnsSameBuffer(t *testing.T) {
	buf := audio.NewBuffer(make([]float32, 100), audio.Format{SampleRate: 44100, Channels: 2})
	if out := Apply(buf, 44100); out != buf {
		t.Error("expected Apply to return the original buffer for matching rates")
	}
}
