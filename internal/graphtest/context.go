// ABOUTME: In-memory graph.Context implementation for engine tests
// ABOUTME: Manual clock, recorded sources and gains, injectable failures

// Package graphtest provides a fake playback graph with a manually
// advanced clock. Tests inspect the sources and gains the engine builds
// and fire source completions by hand.
package graphtest

import (
	"context"
	"sync"

	"github.com/waveplay-audio/waveplay-go/pkg/audio"
	"github.com/waveplay-audio/waveplay-go/pkg/graph"
)

// Context is a graph.Context whose clock only moves through Advance.
// The exported fields inject failures and rendezvous points; set them
// before handing the context to an engine.
type Context struct {
	// SuspendErr and ResumeErr fail the respective calls.
	SuspendErr error
	ResumeErr  error

	// SourceErr fails NewSource; StartErr is copied onto every new
	// source and fails its Start.
	SourceErr error
	StartErr  error

	// SuspendStarted, when non-nil, receives one value as a suspend
	// call begins. SuspendGate, when non-nil, blocks the suspend until
	// the channel is closed or the caller's context is done.
	SuspendStarted chan struct{}
	SuspendGate    chan struct{}

	mu           sync.Mutex
	now          float64
	suspended    bool
	closed       bool
	sources      []*Source
	gains        []*Gain
	suspendCalls int
	resumeCalls  int
}

var _ graph.Context = (*Context)(nil)

// New returns a running context with the clock at zero
func New() *Context {
	return &Context{}
}

// Advance moves the clock forward by the given number of seconds. The
// clock holds still while suspended, matching a real playback context.
func (c *Context) Advance(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.suspended {
		c.now += seconds
	}
}

// Now returns the current clock reading
func (c *Context) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Suspend halts the clock. With SuspendGate set, the call parks at the
// gate before taking effect so tests can interleave other operations.
func (c *Context) Suspend(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return graph.ErrContextClosed
	}
	c.suspendCalls++
	failWith := c.SuspendErr
	started := c.SuspendStarted
	gate := c.SuspendGate
	c.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if failWith != nil {
		return failWith
	}

	c.mu.Lock()
	c.suspended = true
	c.mu.Unlock()
	return nil
}

// Resume restarts the clock
func (c *Context) Resume(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return graph.ErrContextClosed
	}
	c.resumeCalls++
	if c.ResumeErr != nil {
		return c.ResumeErr
	}
	c.suspended = false
	return nil
}

// NewGain records and returns a new gain stage
func (c *Context) NewGain(value float64) graph.Gain {
	g := &Gain{value: value}
	c.mu.Lock()
	c.gains = append(c.gains, g)
	c.mu.Unlock()
	return g
}

// NewSource records and returns a new source node
func (c *Context) NewSource(buf *audio.Buffer, spec graph.SourceSpec, out graph.Gain) (graph.Source, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, graph.ErrContextClosed
	}
	if c.SourceErr != nil {
		return nil, c.SourceErr
	}
	s := &Source{Buf: buf, Spec: spec, Out: out, startErr: c.StartErr}
	c.sources = append(c.sources, s)
	return s, nil
}

// Close marks the context closed. Further suspend, resume and source
// calls fail with graph.ErrContextClosed.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Suspended reports whether the clock is currently halted
func (c *Context) Suspended() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.suspended
}

// Closed reports whether Close has been called
func (c *Context) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// SuspendCalls returns the number of Suspend calls made
func (c *Context) SuspendCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.suspendCalls
}

// ResumeCalls returns the number of Resume calls made
func (c *Context) ResumeCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resumeCalls
}

// Sources returns every source created so far, oldest first
func (c *Context) Sources() []*Source {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Source, len(c.sources))
	copy(out, c.sources)
	return out
}

// LastSource returns the most recently created source, or nil
func (c *Context) LastSource() *Source {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.sources) == 0 {
		return nil
	}
	return c.sources[len(c.sources)-1]
}

// Gains returns every gain stage created so far, oldest first
func (c *Context) Gains() []*Gain {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Gain, len(c.gains))
	copy(out, c.gains)
	return out
}

// Source is a recorded source node. FireEnd simulates the node running
// out of material.
type Source struct {
	Buf  *audio.Buffer
	Spec graph.SourceSpec
	Out  graph.Gain

	startErr error

	mu      sync.Mutex
	started bool
	stopped bool
}

var _ graph.Source = (*Source)(nil)

// Start marks the source started
func (s *Source) Start() error {
	if s.startErr != nil {
		return s.startErr
	}
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()
	return nil
}

// Stop marks the source stopped
func (s *Source) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
}

// Started reports whether Start succeeded
func (s *Source) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Stopped reports whether Stop was called
func (s *Source) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// FireEnd invokes the source's completion hook synchronously, the way a
// bounded node reports running out of frames
func (s *Source) FireEnd() {
	if s.Spec.OnEnd != nil {
		s.Spec.OnEnd()
	}
}

// Gain is a recorded gain stage that remembers every value set on it
type Gain struct {
	mu    sync.Mutex
	value float64
	sets  []float64
}

var _ graph.Gain = (*Gain)(nil)

// Set updates the gain value
func (g *Gain) Set(value float64) {
	g.mu.Lock()
	g.value = value
	g.sets = append(g.sets, value)
	g.mu.Unlock()
}

// Value returns the current gain value
func (g *Gain) Value() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.value
}

// Sets returns every value passed to Set, oldest first
func (g *Gain) Sets() []float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]float64, len(g.sets))
	copy(out, g.sets)
	return out
}
