// ABOUTME: Oto-backed playback graph implementation
// ABOUTME: Real hardware context with suspendable clock, gain nodes and source players
package graph

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/waveplay-audio/waveplay-go/pkg/audio"
)

// watchInterval is how often source watchers poll for drained playback
const watchInterval = 25 * time.Millisecond

// OtoContextOptions configures the real playback context
type OtoContextOptions struct {
	// SampleRate of the output device. 0 adopts the first buffer's rate.
	SampleRate int

	// BufferSize overrides oto's default device buffer when non-zero
	BufferSize time.Duration
}

// OtoContext implements Context over the oto library. The underlying oto
// context is created lazily on the first source, since oto allows only one
// context per process and needs a sample rate up front; buffers at other
// rates are converted by the render chain.
//
// The clock accumulates running seconds and freezes while suspended, like
// a hardware audio clock that halts with the device.
type OtoContext struct {
	mu      sync.Mutex
	opts    OtoContextOptions
	otoCtx  *oto.Context
	outRate int
	sources map[*otoSource]struct{}

	started   time.Time
	elapsed   float64
	suspended bool
	closed    bool
}

var _ Context = (*OtoContext)(nil)

// NewOtoContext creates a real playback context. The clock starts running
// immediately.
func NewOtoContext(opts OtoContextOptions) *OtoContext {
	return &OtoContext{
		opts:    opts,
		sources: make(map[*otoSource]struct{}),
		started: time.Now(),
	}
}

// Now returns accumulated running time in seconds
func (c *OtoContext) Now() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.suspended || c.closed {
		return c.elapsed
	}
	return c.elapsed + time.Since(c.started).Seconds()
}

// Suspend halts the clock and the audio device
func (c *OtoContext) Suspend(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrContextClosed
	}
	if c.suspended {
		return nil
	}
	if c.otoCtx != nil {
		if err := c.otoCtx.Suspend(); err != nil {
			return fmt.Errorf("failed to suspend audio context: %w", err)
		}
	}
	c.elapsed += time.Since(c.started).Seconds()
	c.suspended = true
	return nil
}

// Resume restarts the clock and the audio device
func (c *OtoContext) Resume(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrContextClosed
	}
	if !c.suspended {
		return nil
	}
	if c.otoCtx != nil {
		if err := c.otoCtx.Resume(); err != nil {
			return fmt.Errorf("failed to resume audio context: %w", err)
		}
	}
	c.started = time.Now()
	c.suspended = false
	return nil
}

// NewGain creates a persistent gain node
func (c *OtoContext) NewGain(value float64) Gain {
	g := &otoGain{}
	g.Set(value)
	return g
}

// NewSource creates a playback node for buf routed through out
func (c *OtoContext) NewSource(buf *audio.Buffer, spec SourceSpec, out Gain) (Source, error) {
	if buf == nil || buf.Frames() == 0 {
		return nil, errors.New("graph: no samples to play")
	}
	if spec.Rate <= 0 {
		return nil, fmt.Errorf("graph: invalid playback rate %v", spec.Rate)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrContextClosed
	}

	if c.otoCtx == nil {
		if err := c.openLocked(buf.SampleRate()); err != nil {
			return nil, err
		}
	}

	r := newRender(buf, spec, out, c.outRate)
	src := &otoSource{
		player: c.otoCtx.NewPlayer(r),
		render: r,
		onEnd:  spec.OnEnd,
		done:   make(chan struct{}),
	}
	src.release = func() {
		c.mu.Lock()
		delete(c.sources, src)
		c.mu.Unlock()
	}
	c.sources[src] = struct{}{}
	return src, nil
}

// openLocked initializes the oto context. Callers hold c.mu.
func (c *OtoContext) openLocked(bufRate int) error {
	rate := c.opts.SampleRate
	if rate <= 0 {
		rate = bufRate
	}

	op := &oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: outChannels,
		Format:       oto.FormatFloat32LE,
	}
	if c.opts.BufferSize > 0 {
		op.BufferSize = c.opts.BufferSize
	}

	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	if c.suspended {
		// Keep the device consistent with an already-suspended clock
		if err := otoCtx.Suspend(); err != nil {
			return fmt.Errorf("failed to suspend audio context: %w", err)
		}
	}

	c.otoCtx = otoCtx
	c.outRate = rate
	log.Printf("Audio output initialized: %dHz, %d channels", rate, outChannels)
	return nil
}

// Close stops all sources and suspends the device for good. oto contexts
// cannot be torn down per-process, so suspension is as released as it gets.
func (c *OtoContext) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	if !c.suspended {
		c.elapsed += time.Since(c.started).Seconds()
		c.suspended = true
	}
	sources := make([]*otoSource, 0, len(c.sources))
	for src := range c.sources {
		sources = append(sources, src)
	}
	c.sources = nil
	otoCtx := c.otoCtx
	c.mu.Unlock()

	for _, src := range sources {
		src.Stop()
	}
	if otoCtx != nil {
		if err := otoCtx.Suspend(); err != nil {
			return fmt.Errorf("failed to suspend audio context: %w", err)
		}
	}
	return nil
}

// otoGain stores its value atomically so the render path can read it
// without taking a lock
type otoGain struct {
	bits atomic.Uint64
}

var _ Gain = (*otoGain)(nil)

func (g *otoGain) Set(value float64) {
	if value < 0 {
		value = 0
	}
	g.bits.Store(math.Float64bits(value))
}

func (g *otoGain) Value() float64 {
	return math.Float64frombits(g.bits.Load())
}

// otoSource is a single-use playback node over an oto player
type otoSource struct {
	player  *oto.Player
	render  *render
	onEnd   func()
	done    chan struct{}
	release func()
	stop    sync.Once
}

var _ Source = (*otoSource)(nil)

// Start begins playback and, for non-loop sources with a completion
// callback, spawns the drain watcher
func (s *otoSource) Start() error {
	s.player.Play()
	if !s.render.loop && s.onEnd != nil {
		go s.watch()
	}
	return nil
}

// watch polls until the rendered range has fully drained, then fires OnEnd
func (s *otoSource) watch() {
	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if s.render.exhausted() && !s.player.IsPlaying() {
				s.onEnd()
				return
			}
		}
	}
}

// Stop halts playback and releases the node
func (s *otoSource) Stop() {
	s.stop.Do(func() {
		close(s.done)
		if err := s.player.Close(); err != nil {
			log.Printf("Failed to close audio player: %v", err)
		}
		if s.release != nil {
			s.release()
		}
	})
}
