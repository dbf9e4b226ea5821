package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/hajimehoshi/go-mp3"
)

var fetchClient = &http.Client{Timeout: 30 * time.Second}

// bytes per decoded frame: go-mp3 always emits 16-bit stereo
const bytesPerFrame = 4

func analyzeDuration(ctx context.Context, job Job) (float64, error) {
	r, err := openSource(ctx, job)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return 0, fmt.Errorf("decode failed: %w", err)
	}
	rate := decoder.SampleRate()
	if rate <= 0 {
		return 0, errors.New("decoder reported no sample rate")
	}

	// Length is only known when the source can seek.
	if n := decoder.Length(); n > 0 {
		return float64(n) / bytesPerFrame / float64(rate), nil
	}

	n, err := io.Copy(io.Discard, decoder)
	if err != nil {
		return 0, fmt.Errorf("read failed: %w", err)
	}
	if n == 0 {
		return 0, errors.New("song contains no samples")
	}
	return float64(n) / bytesPerFrame / float64(rate), nil
}

func openSource(ctx context.Context, job Job) (io.ReadCloser, error) {
	if job.Path != "" {
		f, err := os.Open(job.Path)
		if err != nil {
			return nil, fmt.Errorf("open failed: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, job.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	// #nosec G107 -- URL comes from the catalog listing
	resp, err := fetchClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// AnalyzeFunc allows tests to override the analyzer implementation.
var AnalyzeFunc = analyzeDuration
