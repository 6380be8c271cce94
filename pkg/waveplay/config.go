// ABOUTME: Playback configuration, partial updates and validation
// ABOUTME: Immutable config values with explicit changed-field sets
package waveplay

import "fmt"

// Field names a Config field in a changed set
type Field string

const (
	FieldLoop        Field = "loop"
	FieldRate        Field = "rate"
	FieldGain        Field = "gain"
	FieldStartOffset Field = "startOffset"
	FieldEndOffset   Field = "endOffset"
	FieldLoopStart   Field = "loopStart"
	FieldLoopEnd     Field = "loopEnd"
)

// Config holds the engine's playback parameters. Time fields are seconds
// of buffer content. Config is a value; updates replace it wholesale.
type Config struct {
	// Loop selects looped-region playback over bounded playback
	Loop bool

	// Rate is the playback speed multiplier. Must be positive.
	Rate float64

	// Gain is the linear volume multiplier. Must not be negative.
	Gain float64

	// StartOffset is where playback begins
	StartOffset float64

	// EndOffset bounds non-loop playback. Ignored while Loop is set.
	EndOffset float64

	// LoopStart and LoopEnd delimit the cycled region while Loop is set
	LoopStart float64
	LoopEnd   float64
}

// Patch is a partial config update. Nil fields are left untouched; a
// field counts as changed exactly when the patch carries it, regardless
// of whether the value differs.
type Patch struct {
	Loop        *bool
	Rate        *float64
	Gain        *float64
	StartOffset *float64
	EndOffset   *float64
	LoopStart   *float64
	LoopEnd     *float64
}

// defaultConfig is the configuration of a fresh engine with no buffer
func defaultConfig() Config {
	return Config{Rate: 1, Gain: 1}
}

// configForBuffer derives fresh offsets from a newly attached buffer,
// keeping rate, gain and loop mode
func (c Config) configForBuffer(duration float64) Config {
	c.StartOffset = 0
	c.EndOffset = duration
	c.LoopStart = 0
	c.LoopEnd = duration
	return c
}

// merge applies the fields present in p and returns the new config plus
// the changed-field set, in declaration order
func (c Config) merge(p Patch) (Config, []Field) {
	var changed []Field
	if p.Loop != nil {
		c.Loop = *p.Loop
		changed = append(changed, FieldLoop)
	}
	if p.Rate != nil {
		c.Rate = *p.Rate
		changed = append(changed, FieldRate)
	}
	if p.Gain != nil {
		c.Gain = *p.Gain
		changed = append(changed, FieldGain)
	}
	if p.StartOffset != nil {
		c.StartOffset = *p.StartOffset
		changed = append(changed, FieldStartOffset)
	}
	if p.EndOffset != nil {
		c.EndOffset = *p.EndOffset
		changed = append(changed, FieldEndOffset)
	}
	if p.LoopStart != nil {
		c.LoopStart = *p.LoopStart
		changed = append(changed, FieldLoopStart)
	}
	if p.LoopEnd != nil {
		c.LoopEnd = *p.LoopEnd
		changed = append(changed, FieldLoopEnd)
	}
	return c, changed
}

// validate checks ordering and range requirements. Violations are
// reported, never clamped.
func (c Config) validate() error {
	if c.Rate <= 0 {
		return fmt.Errorf("%w: rate %v is not positive", ErrInvalidRange, c.Rate)
	}
	if c.Gain < 0 {
		return fmt.Errorf("%w: gain %v is negative", ErrInvalidRange, c.Gain)
	}
	if c.Loop {
		if c.StartOffset > c.LoopEnd {
			return fmt.Errorf("%w: startOffset %v exceeds loopEnd %v", ErrInvalidRange, c.StartOffset, c.LoopEnd)
		}
		if c.LoopStart > c.LoopEnd {
			return fmt.Errorf("%w: loopStart %v exceeds loopEnd %v", ErrInvalidRange, c.LoopStart, c.LoopEnd)
		}
		return nil
	}
	if c.StartOffset > c.EndOffset {
		return fmt.Errorf("%w: startOffset %v exceeds endOffset %v", ErrInvalidRange, c.StartOffset, c.EndOffset)
	}
	return nil
}

// restartRequired reports whether any changed field needs a live episode
// rebuilt. Gain never does; endOffset only matters outside loop mode.
func restartRequired(changed []Field, next Config) bool {
	for _, f := range changed {
		switch f {
		case FieldGain:
		case FieldEndOffset:
			if !next.Loop {
				return true
			}
		default:
			return true
		}
	}
	return false
}

func containsField(changed []Field, f Field) bool {
	for _, c := range changed {
		if c == f {
			return true
		}
	}
	return false
}
