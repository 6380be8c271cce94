// ABOUTME: Playback position derivation from clock readings
// ABOUTME: Implements the loop-aware time model with decimal arithmetic
package waveplay

import "github.com/shopspring/decimal"

// minLoopSpan guards the modulo against a degenerate loop region. For
// regions shorter than this the audio wraps at the true span while the
// reported position ramps over the floored one.
var minLoopSpan = decimal.NewFromInt(1)

// position derives the playback position from a clock reading, the
// config in effect and the episode anchor.
//
// Bounded playback is a straight ray:
//
//	(now - anchor)*rate + startOffset
//
// Loop playback folds elapsed content time into the loop region:
//
//	((now - anchor)*rate - (loopStart - startOffset)) mod span + loopStart
//
// The loop chain is computed in decimal arithmetic end to end, the span
// included: float64 rounding accumulates across the subtraction and modulo
// as cycles add up, and the position must stay exact no matter how long
// playback has looped. The remainder keeps the dividend's sign, so before
// the first wrap the position ramps linearly from startOffset into the
// region.
func position(now float64, cfg Config, anchor float64) float64 {
	elapsed := now - anchor
	if !cfg.Loop {
		return elapsed*cfg.Rate + cfg.StartOffset
	}

	span := decimal.NewFromFloat(cfg.LoopEnd).Sub(decimal.NewFromFloat(cfg.LoopStart))
	if span.LessThan(minLoopSpan) {
		span = minLoopSpan
	}

	content := decimal.NewFromFloat(elapsed).Mul(decimal.NewFromFloat(cfg.Rate))
	gap := decimal.NewFromFloat(cfg.LoopStart).Sub(decimal.NewFromFloat(cfg.StartOffset))
	wrapped := content.Sub(gap).Mod(span)
	pos, _ := wrapped.Add(decimal.NewFromFloat(cfg.LoopStart)).Float64()
	return pos
}
