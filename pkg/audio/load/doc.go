// ABOUTME: Loader package turning encoded audio resources into buffers
// ABOUTME: Provides FromURL with progress callbacks, FromFile and FromReader
// Package load acquires decoded audio buffers from external sources.
//
// FromURL downloads a resource over HTTP with optional transfer callbacks
// and an optional target sample rate:
//
//	buf, err := load.FromURL(ctx, load.URLOptions{
//	    URL:        "https://example.com/clip.mp3",
//	    SampleRate: 48000,
//	    OnProgress: func(loaded, total int64) {
//	        fmt.Printf("\r%d/%d bytes", loaded, total)
//	    },
//	})
//
// FromFile and FromReader decode local sources. All loaders detect the
// payload format from its magic bytes and fail with an explicit error when
// the payload cannot be decoded.
package load
