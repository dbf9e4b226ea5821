package moodinput

import (
	"context"
	"time"

	"github.com/Strum355/log"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

// DefaultPollInterval matches how often the camera snapshot is scored.
const DefaultPollInterval = 2 * time.Second

// Source produces expression scores for the current snapshot. A nil map
// with a nil error means no face was found.
type Source interface {
	Scores(ctx context.Context) (map[string]float64, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (map[string]float64, error)

func (f SourceFunc) Scores(ctx context.Context) (map[string]float64, error) { return f(ctx) }

// Poller scores a Source on a fixed interval and reports mood changes.
type Poller struct {
	source   Source
	interval time.Duration
	onMood   func(context.Context, Detection)
	onScore  func(Detection)
	last     domain.Mood
}

type PollerOption func(*Poller)

func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithObserver receives every classified snapshot, triggering or not.
func WithObserver(fn func(Detection)) PollerOption {
	return func(p *Poller) { p.onScore = fn }
}

// NewPoller calls onMood for each triggering detection whose mood differs
// from the previous triggering one.
func NewPoller(source Source, onMood func(context.Context, Detection), opts ...PollerOption) *Poller {
	p := &Poller{source: source, interval: DefaultPollInterval, onMood: onMood}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run polls until ctx is cancelled and returns ctx.Err(). Source errors
// are logged and polling continues.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	scores, err := p.source.Scores(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.WithError(err).Warn("face source failed")
		}
		return
	}
	d, ok := Classify(scores)
	if d.Expression != "" && p.onScore != nil {
		p.onScore(d)
	}
	if !ok || d.Mood == p.last {
		return
	}
	p.last = d.Mood
	p.onMood(ctx, d)
}
