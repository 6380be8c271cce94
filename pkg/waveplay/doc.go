// ABOUTME: Package documentation for waveplay
// ABOUTME: Describes the transport model and shows basic usage
/*
Package waveplay provides a playback engine for decoded audio buffers with
looping, rate scaling, gain control and bounded playback ranges.

The engine is a transport state machine with four states: stopped, running,
paused and ended. Play, Pause and Stop move between them; a bounded
(non-loop) playback range that runs out moves the engine to ended on its
own. Every transition is reported to a single optional subscriber.

Basic usage:

	buf, err := load.FromFile("track.mp3")
	if err != nil {
		log.Fatal(err)
	}

	engine, err := waveplay.New(waveplay.Options{
		OnStateChange: func(s waveplay.State) {
			log.Printf("transport: %s", s)
		},
	})
	if err != nil {
		log.Fatal(err)
	}
	defer engine.Close()

	engine.SetBuffer(buf)
	if err := engine.Play(); err != nil {
		log.Fatal(err)
	}

Configuration is updated through partial patches. Only the fields present
in the patch change; gain applies to live playback immediately, while the
other fields restart playback when the engine is running:

	loop := true
	start, end := 12.5, 37.5
	err = engine.SetConfig(waveplay.Patch{
		Loop:      &loop,
		LoopStart: &start,
		LoopEnd:   &end,
	})

Position reporting follows the transport: while running, CurrentTime
derives the position from the playback clock, mapping it into the loop
region when looping. In any other state it returns the frozen position
from the most recent pause, stop or natural end.

By default the engine drives a speaker-backed graph context. Tests and
offline callers can supply any graph.Context implementation through
Options.Graph.
*/
package waveplay
