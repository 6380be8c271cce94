// ABOUTME: Buffer acquisition from URLs, local files and readers
// ABOUTME: Fetches encoded audio, decodes it and optionally resamples
package load

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/waveplay-audio/waveplay-go/pkg/audio"
	"github.com/waveplay-audio/waveplay-go/pkg/audio/decode"
	"github.com/waveplay-audio/waveplay-go/pkg/audio/resample"
)

// URLOptions configures FromURL
type URLOptions struct {
	// URL of the encoded audio resource
	URL string

	// SampleRate converts the decoded buffer to this rate when non-zero
	SampleRate int

	// Client overrides the HTTP client used for the transfer
	Client *http.Client

	// OnStart is invoked once, when the transfer begins
	OnStart func()

	// OnProgress is invoked as encoded bytes arrive. total is -1 when the
	// response does not declare a content length.
	OnProgress func(loaded, total int64)
}

// FromURL downloads an encoded audio resource and decodes it. Transfer and
// decode failures are explicit errors; a payload that cannot be decoded
// never yields a buffer.
func FromURL(ctx context.Context, opts URLOptions) (*audio.Buffer, error) {
	if opts.URL == "" {
		return nil, errors.New("load: no URL given")
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	log.Printf("Downloading audio: %s", opts.URL)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("audio download failed: HTTP %d", resp.StatusCode)
	}

	if opts.OnStart != nil {
		opts.OnStart()
	}

	body := io.Reader(resp.Body)
	if opts.OnProgress != nil {
		body = &progressReader{r: resp.Body, total: resp.ContentLength, report: opts.OnProgress}
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	return decodeAndConvert(data, opts.SampleRate)
}

// FromFile reads and decodes a local audio file
func FromFile(path string) (*audio.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file: %w", err)
	}
	return decodeAndConvert(data, 0)
}

// FromReader reads and decodes encoded audio from r
func FromReader(r io.Reader) (*audio.Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}
	return decodeAndConvert(data, 0)
}

func decodeAndConvert(data []byte, sampleRate int) (*audio.Buffer, error) {
	buf, err := decode.Decode(data)
	if err != nil {
		return nil, err
	}
	if sampleRate > 0 && sampleRate != buf.SampleRate() {
		log.Printf("Resampling %d Hz -> %d Hz", buf.SampleRate(), sampleRate)
		buf = resample.Apply(buf, sampleRate)
	}
	return buf, nil
}

// progressReader reports cumulative bytes read to a callback
type progressReader struct {
	r      io.Reader
	loaded int64
	total  int64
	report func(loaded, total int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.loaded += int64(n)
		p.report(p.loaded, p.total)
	}
	return n, err
}
