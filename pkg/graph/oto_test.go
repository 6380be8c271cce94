// ABOUTME: Tests for the oto context clock and gain nodes
// ABOUTME: Exercises suspend/resume clock freezing without touching hardware
package graph

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestClockAdvancesWhileRunning(t *testing.T) {
	c := NewOtoContext(OtoContextOptions{})

	time.Sleep(30 * time.Millisecond)
	if now := c.Now(); now < 0.02 {
		t.Errorf("expected clock past 0.02s, got %v", now)
	}
}

func TestClockFreezesWhileSuspended(t *testing.T) {
	c := NewOtoContext(OtoContextOptions{})

	time.Sleep(10 * time.Millisecond)
	if err := c.Suspend(context.Background()); err != nil {
		t.Fatalf("suspend failed: %v", err)
	}

	frozen := c.Now()
	time.Sleep(20 * time.Millisecond)
	if now := c.Now(); now != frozen {
		t.Errorf("expected frozen clock %v, got %v", frozen, now)
	}

	if err := c.Resume(context.Background()); err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if now := c.Now(); now <= frozen {
		t.Errorf("expected clock to advance past %v after resume, got %v", frozen, now)
	}
}

func TestSuspendResumeIdempotent(t *testing.T) {
	c := NewOtoContext(OtoContextOptions{})

	if err := c.Resume(context.Background()); err != nil {
		t.Errorf("resume of running context should be a no-op, got %v", err)
	}
	if err := c.Suspend(context.Background()); err != nil {
		t.Fatalf("suspend failed: %v", err)
	}
	if err := c.Suspend(context.Background()); err != nil {
		t.Errorf("second suspend should be a no-op, got %v", err)
	}
}

func TestSuspendHonorsCanceledContext(t *testing.T) {
	c := NewOtoContext(OtoContextOptions{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Suspend(ctx); err == nil {
		t.Error("expected error from suspend with canceled context")
	}
	if err := c.Resume(ctx); err == nil {
		t.Error("expected error from resume with canceled context")
	}
}

func TestCloseFreezesClockForGood(t *testing.T) {
	c := NewOtoContext(OtoContextOptions{})

	time.Sleep(10 * time.Millisecond)
	if err := c.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	frozen := c.Now()
	time.Sleep(10 * time.Millisecond)
	if now := c.Now(); now != frozen {
		t.Errorf("expected frozen clock %v after close, got %v", frozen, now)
	}

	if err := c.Suspend(context.Background()); !errors.Is(err, ErrContextClosed) {
		t.Errorf("expected ErrContextClosed, got %v", err)
	}
	if err := c.Resume(context.Background()); !errors.Is(err, ErrContextClosed) {
		t.Errorf("expected ErrContextClosed, got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}
}

func TestGainValueRoundTrip(t *testing.T) {
	c := NewOtoContext(OtoContextOptions{})
	g := c.NewGain(0.8)

	if got := g.Value(); got != 0.8 {
		t.Errorf("expected gain 0.8, got %v", got)
	}

	g.Set(2.5)
	if got := g.Value(); got != 2.5 {
		t.Errorf("expected gain 2.5, got %v", got)
	}
}

func TestGainClampsNegativeValues(t *testing.T) {
	c := NewOtoContext(OtoContextOptions{})
	g := c.NewGain(-1)

	if got := g.Value(); got != 0 {
		t.Errorf("expected negative gain clamped to 0, got %v", got)
	}
}
