// Package worker provides background processing for song analysis jobs.
package worker

import (
	"context"
	"sync"

	"github.com/Strum355/log"

	"github.com/ewilliams-labs/moodtune/internal/core/ports"
)

// Job asks for the duration of one song. Path is set when the song is on
// local disk; otherwise URL is fetched.
type Job struct {
	URL  string
	Path string
}

// Pool manages background workers for async jobs.
type Pool struct {
	repo ports.SongMetaRepository
	jobs chan Job

	mu       sync.Mutex
	inflight map[string]struct{}
	stopped  bool

	wg sync.WaitGroup
}

// NewPool creates a worker pool with the given queue size.
func NewPool(repo ports.SongMetaRepository, queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{
		repo:     repo,
		jobs:     make(chan Job, queueSize),
		inflight: map[string]struct{}{},
	}
}

// Start launches the worker goroutines. Once ctx is done, fetches in
// progress are abandoned and queued jobs are skipped.
func (p *Pool) Start(ctx context.Context, workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(ctx, job)
			}
		}()
	}
}

// Stop waits for workers to finish after closing the queue. Queued jobs
// still run unless the context given to Start is done.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

// Submit queues a job without blocking. A URL that is already queued or
// being analysed is ignored.
func (p *Pool) Submit(job Job) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	if _, ok := p.inflight[job.URL]; ok {
		return
	}
	select {
	case p.jobs <- job:
		p.inflight[job.URL] = struct{}{}
	default:
		log.WithContext(jobContext(context.Background(), job)).Warn("worker queue full, dropping job")
	}
}

// SubmitAnalysis implements ports.JobSubmitter.
func (p *Pool) SubmitAnalysis(url, path string) {
	p.Submit(Job{URL: url, Path: path})
}

func (p *Pool) processJob(ctx context.Context, job Job) {
	defer func() {
		p.mu.Lock()
		delete(p.inflight, job.URL)
		p.mu.Unlock()
	}()

	if job.URL == "" {
		log.Warn("worker: job without url, skipping")
		return
	}

	if ctx.Err() != nil {
		return
	}

	ctx = jobContext(ctx, job)
	seconds, err := AnalyzeFunc(ctx, job)
	if err != nil {
		log.WithContext(withError(ctx, err)).Warn("worker: analysis failed")
		return
	}
	if err := p.repo.SaveDuration(ctx, job.URL, seconds); err != nil {
		log.WithContext(withError(ctx, err)).Warn("worker: failed to save duration")
		return
	}
	log.WithContext(ctx).Info("worker: stored song duration")
}

func jobContext(ctx context.Context, job Job) context.Context {
	return context.WithValue(ctx, log.Key, log.Fields{
		"url":  job.URL,
		"path": job.Path,
	})
}

func withError(ctx context.Context, err error) context.Context {
	fields := log.Fields{"error": err.Error()}
	if parent, ok := ctx.Value(log.Key).(log.Fields); ok {
		for k, v := range parent {
			fields[k] = v
		}
	}
	return context.WithValue(ctx, log.Key, fields)
}
