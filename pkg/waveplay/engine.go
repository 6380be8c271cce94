// ABOUTME: The playback engine: a transport state machine over a graph context
// ABOUTME: Owns config, episodes, frozen positions and state notifications
package waveplay

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/waveplay-audio/waveplay-go/pkg/audio"
	"github.com/waveplay-audio/waveplay-go/pkg/graph"
)

// Options configures a new engine
type Options struct {
	// Graph is the playback context the engine drives. The engine takes
	// exclusive ownership and releases it on Close. Nil gets a real
	// oto-backed context.
	Graph graph.Context

	// OnStateChange is called after every transport transition. The
	// engine has a single subscriber slot; SetOnStateChange replaces it.
	OnStateChange func(State)
}

// episode is one live playback span: a source node, the clock anchor it
// started from, the config snapshot it was built from, and an identity
// that every asynchronous continuation checks before committing anything.
// Position and end derivations read the snapshot, so config recorded
// after the start (while paused, say) never bends a span already playing.
type episode struct {
	id     uuid.UUID
	source graph.Source
	anchor float64
	cfg    Config
}

// Engine layers bounded, looped, rate-scaled and gain-controlled playback
// on top of a playback graph. Safe for concurrent use.
type Engine struct {
	mu    sync.Mutex
	graph graph.Context
	gain  graph.Gain

	buf    *audio.Buffer
	cfg    Config
	state  State
	ep     *episode
	frozen float64

	onState func(State)

	ctx    context.Context
	cancel context.CancelFunc
	closed bool
}

// New creates an engine. The graph context passed in Options (or created
// by default) is owned by the engine from here on.
func New(opts Options) (*Engine, error) {
	g := opts.Graph
	if g == nil {
		g = graph.NewOtoContext(graph.OtoContextOptions{})
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		graph:   g,
		cfg:     defaultConfig(),
		state:   StateStopped,
		onState: opts.OnStateChange,
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// SetOnStateChange replaces the state-change subscriber
func (e *Engine) SetOnStateChange(fn func(State)) {
	e.mu.Lock()
	e.onState = fn
	e.mu.Unlock()
}

// SetBuffer attaches the decoded source buffer and derives fresh offsets
// from its duration. Active playback stops first; a live node is bound to
// the old buffer.
func (e *Engine) SetBuffer(buf *audio.Buffer) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	transition := e.stopLocked()
	e.buf = buf
	e.cfg = e.cfg.configForBuffer(buf.Duration())
	e.frozen = 0
	fn := e.onState
	e.mu.Unlock()

	if transition {
		safeNotify(fn, StateStopped)
	}
}

// Buffer returns the attached source buffer, or nil
func (e *Engine) Buffer() *audio.Buffer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf
}

// Duration returns the attached buffer's duration in seconds, or 0
func (e *Engine) Duration() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Duration()
}

// State returns the current transport state
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Config returns a snapshot of the current configuration
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// CurrentTime returns the playback position in seconds. While running it
// derives from the graph clock; in every other state the frozen position
// is returned verbatim.
func (e *Engine) CurrentTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateRunning || e.ep == nil {
		return e.frozen
	}
	return position(e.graph.Now(), e.ep.cfg, e.ep.anchor)
}

// Play starts playback. Without a buffer it fails with ErrNoSource; with
// a config that fails validation it fails with ErrInvalidRange; neither
// changes the transport state. From paused it resumes the suspended
// clock and the same episode, notifying after the resume completes. From
// stopped or ended it builds a fresh episode anchored at the current
// clock reading and notifies immediately. While running it is a no-op.
func (e *Engine) Play() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if e.state == StateRunning {
		e.mu.Unlock()
		return nil
	}
	if e.buf == nil {
		e.mu.Unlock()
		return ErrNoSource
	}
	if err := e.cfg.validate(); err != nil {
		e.mu.Unlock()
		return err
	}

	if e.state == StatePaused {
		return e.resumeLocked()
	}
	return e.startLocked()
}

// startLocked builds and starts a fresh episode from stopped or ended.
// Called with the lock held; releases it before returning.
func (e *Engine) startLocked() error {
	// A node from a previous span is single-use and cannot be revived
	if e.ep != nil {
		e.ep.source.Stop()
		e.ep = nil
	}

	// The clock may still be suspended by a pause that was abandoned
	// through stop; a fresh span needs it running
	if err := e.graph.Resume(e.ctx); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("failed to start playback clock: %w", err)
	}

	if e.gain == nil {
		e.gain = e.graph.NewGain(e.cfg.Gain)
	} else {
		e.gain.Set(e.cfg.Gain)
	}

	id := uuid.New()
	anchor := e.graph.Now()
	src, err := e.graph.NewSource(e.buf, e.sourceSpec(id), e.gain)
	if err != nil {
		e.mu.Unlock()
		return fmt.Errorf("failed to create source node: %w", err)
	}
	if err := src.Start(); err != nil {
		src.Stop()
		e.mu.Unlock()
		return fmt.Errorf("failed to start source node: %w", err)
	}

	e.ep = &episode{id: id, source: src, anchor: anchor, cfg: e.cfg}
	e.state = StateRunning
	fn := e.onState
	e.mu.Unlock()

	safeNotify(fn, StateRunning)
	return nil
}

// sourceSpec maps the current config onto a source node spec. Loop nodes
// cycle forever and never complete; bounded nodes get an explicit play
// duration and a completion hook carrying the episode identity.
func (e *Engine) sourceSpec(id uuid.UUID) graph.SourceSpec {
	spec := graph.SourceSpec{
		Rate:   e.cfg.Rate,
		Offset: e.cfg.StartOffset,
	}
	if e.cfg.Loop {
		spec.Loop = true
		spec.LoopStart = e.cfg.LoopStart
		spec.LoopEnd = e.cfg.LoopEnd
	} else {
		spec.Duration = e.cfg.EndOffset - e.cfg.StartOffset
		spec.OnEnd = func() { e.handleEnd(id) }
	}
	return spec
}

// resumeLocked resumes the paused episode. Called with the lock held;
// the lock is released around the clock resume so concurrent operations
// are never blocked behind the device.
func (e *Engine) resumeLocked() error {
	id := e.ep.id
	e.mu.Unlock()

	if err := e.graph.Resume(e.ctx); err != nil {
		return err
	}

	e.mu.Lock()
	if e.closed || e.state != StatePaused || e.ep == nil || e.ep.id != id {
		// Superseded while resuming; a newer operation owns the clock now
		e.mu.Unlock()
		return nil
	}
	e.state = StateRunning
	fn := e.onState
	e.mu.Unlock()

	safeNotify(fn, StateRunning)
	return nil
}

// Pause suspends the clock and freezes the position. Valid only while
// running, a no-op otherwise. The paused notification fires after the
// suspension completes; if the engine moved on while the suspend was in
// flight, the stale resolution is discarded and the clock restored.
func (e *Engine) Pause() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if e.state != StateRunning || e.ep == nil {
		e.mu.Unlock()
		return nil
	}
	id := e.ep.id
	e.mu.Unlock()

	if err := e.graph.Suspend(e.ctx); err != nil {
		return err
	}

	e.mu.Lock()
	if e.closed || e.state != StateRunning || e.ep == nil || e.ep.id != id {
		// A concurrent stop, close or restart won the race. Undo the
		// suspension unless the current state owns it.
		undo := !e.closed && e.state != StatePaused
		e.mu.Unlock()
		if undo {
			if err := e.graph.Resume(e.ctx); err != nil {
				log.Printf("Failed to restore clock after stale pause: %v", err)
			}
		}
		return nil
	}

	// The clock is halted now, so this reading is the exact pause point
	e.frozen = position(e.graph.Now(), e.ep.cfg, e.ep.anchor)
	e.state = StatePaused
	fn := e.onState
	e.mu.Unlock()

	safeNotify(fn, StatePaused)
	return nil
}

// Stop halts playback synchronously from any state and resets the
// position to the configured start offset. Safe to call repeatedly.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	transition := e.stopLocked()
	fn := e.onState
	e.mu.Unlock()

	if transition {
		safeNotify(fn, StateStopped)
	}
}

// stopLocked tears down the episode and resets the frozen position.
// Returns whether the state actually changed.
func (e *Engine) stopLocked() bool {
	if e.ep != nil {
		e.ep.source.Stop()
		e.ep = nil
	}
	e.frozen = e.cfg.StartOffset
	if e.state == StateStopped {
		return false
	}
	e.state = StateStopped
	return true
}

// handleEnd processes a source completion. Completions for episodes that
// are no longer current are stale and ignored, as is anything arriving
// when the engine is not running.
func (e *Engine) handleEnd(id uuid.UUID) {
	e.mu.Lock()
	if e.closed || e.state != StateRunning || e.ep == nil || e.ep.id != id {
		e.mu.Unlock()
		return
	}

	e.ep.source.Stop()
	// The end position is the episode's own bound exactly; a clock-derived
	// value would land past it, and a bound recorded after the start
	// belongs to the next span
	e.frozen = e.ep.cfg.EndOffset
	e.ep = nil
	e.state = StateEnded
	fn := e.onState
	e.mu.Unlock()

	safeNotify(fn, StateEnded)
}

// SetConfig applies a partial configuration update. Gain reaches a live
// gain node immediately without disturbing transport. Rate, loop mode
// and the offsets take a restart, which happens transparently (stop then
// play) only when the engine is running at the time of the call;
// otherwise the change is recorded and takes effect on the next fresh
// play. endOffset is restart-significant only while loop mode is off.
func (e *Engine) SetConfig(p Patch) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}

	next, changed := e.cfg.merge(p)
	e.cfg = next
	if len(changed) == 0 {
		e.mu.Unlock()
		return nil
	}

	if containsField(changed, FieldGain) && e.gain != nil {
		e.gain.Set(next.Gain)
	}

	if !restartRequired(changed, next) || e.state != StateRunning {
		e.mu.Unlock()
		return nil
	}

	transition := e.stopLocked()
	fn := e.onState
	e.mu.Unlock()

	if transition {
		safeNotify(fn, StateStopped)
	}
	return e.Play()
}

// Close stops playback and releases the graph context. The engine is
// unusable afterward; in-flight pause or resume waits are cut loose.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.cancel()
	if e.ep != nil {
		e.ep.source.Stop()
		e.ep = nil
	}
	transition := e.state != StateStopped
	e.state = StateStopped
	e.frozen = e.cfg.StartOffset
	fn := e.onState
	e.mu.Unlock()

	if transition {
		safeNotify(fn, StateStopped)
	}
	return e.graph.Close()
}

// safeNotify delivers one state notification, containing subscriber
// panics so they cannot corrupt transport state
func safeNotify(fn func(State), s State) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("State change subscriber panicked: %v", r)
		}
	}()
	fn(s)
}
