// ABOUTME: Playback graph capability surface
// ABOUTME: Defines the Context, Source and Gain primitives the engine drives
package graph

import (
	"context"
	"errors"

	"github.com/waveplay-audio/waveplay-go/pkg/audio"
)

// ErrContextClosed indicates an operation on a closed graph context
var ErrContextClosed = errors.New("graph: context closed")

// SourceSpec configures a single-use source node. Times are in seconds of
// buffer content; Rate scales playback speed without affecting how the
// time fields are interpreted.
type SourceSpec struct {
	// Rate is the playback speed multiplier (1.0 = native speed)
	Rate float64

	// Offset is where playback of the buffer begins
	Offset float64

	// Duration bounds how much buffer content plays. Ignored when Loop is
	// set; a non-loop source stops and completes after this much content.
	Duration float64

	// Loop cycles the region [LoopStart, LoopEnd) indefinitely. A looping
	// source never completes on its own.
	Loop      bool
	LoopStart float64
	LoopEnd   float64

	// OnEnd fires exactly once when a non-loop source exhausts its range.
	// It is invoked from a graph-owned goroutine.
	OnEnd func()
}

// Context is a playback graph: a suspendable clock, one or more gain
// nodes, and single-use source nodes wired through them to the speakers.
type Context interface {
	// Now returns the clock reading in seconds. The clock advances
	// monotonically except while the context is suspended.
	Now() float64

	// Suspend halts the clock and audio rendering. Idempotent.
	Suspend(ctx context.Context) error

	// Resume restarts the clock and audio rendering. Idempotent.
	Resume(ctx context.Context) error

	// NewGain creates a persistent gain node
	NewGain(value float64) Gain

	// NewSource creates a single-use source node for buf, routed through out.
	// The node does not produce audio until Start is called.
	NewSource(buf *audio.Buffer, spec SourceSpec, out Gain) (Source, error)

	// Close releases the context. Terminal; the clock stops for good.
	Close() error
}

// Source is a single-use playback node. Once stopped or completed it can
// never be started again; callers create a fresh node instead.
type Source interface {
	// Start begins playback
	Start() error

	// Stop halts playback and releases the node. Idempotent.
	Stop()
}

// Gain is a persistent volume node applied to every source routed through it
type Gain interface {
	// Set replaces the gain value, taking effect immediately
	Set(value float64)

	// Value returns the current gain value
	Value() float64
}
