// ABOUTME: Playback graph package wrapping the audio device
// ABOUTME: Provides the Context/Source/Gain primitives and the oto implementation
// Package graph provides the primitive playback capability the engine is
// built on: a context with a suspendable clock, persistent gain nodes, and
// single-use source nodes that play or loop a decoded buffer.
//
// OtoContext is the real implementation over the oto library. It renders
// float32 stereo, converting buffer sample rates and applying playback
// rate and gain in its pull-based render chain. The context's clock
// advances while audio can play and freezes while suspended, which is
// what lets the engine derive playback positions from clock readings.
//
// Example:
//
//	ctx := graph.NewOtoContext(graph.OtoContextOptions{})
//	gain := ctx.NewGain(1.0)
//	src, err := ctx.NewSource(buf, graph.SourceSpec{Rate: 1, Duration: buf.Duration()}, gain)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	src.Start()
package graph
