package moodinput

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		transcript string
		want       Command
		ok         bool
	}{
		{"Play Love songs", Command{Type: ActionChangeMood, Mood: domain.MoodLove}, true},
		{"happy songs please", Command{Type: ActionChangeMood, Mood: domain.MoodHappy}, true},
		{"play sad", Command{Type: ActionChangeMood, Mood: domain.MoodSad}, true},
		{"I need energy", Command{Type: ActionChangeMood, Mood: domain.MoodEnergetic}, true},
		{"help me relax", Command{Type: ActionChangeMood, Mood: domain.MoodCalm}, true},
		{"stop the music", Command{Type: ActionPause}, true},
		{"play", Command{Type: ActionResume}, true},
		{"continue", Command{Type: ActionResume}, true},
		{"keep playing", Command{Type: ActionResume}, true},
		{"continued", Command{Type: ActionResume}, true},
		{"replay that", Command{Type: ActionResume}, true},
		{"resume my playlist", Command{Type: ActionResume}, true},
		{"random please", Command{Type: ActionShuffle}, true},
		{"skip", Command{Type: ActionNext}, true},
		{"what did I hear recently", Command{Type: ActionShowHistory}, true},
		{"open my playlist", Command{Type: ActionShowPlaylist}, true},
		{"save song", Command{Type: ActionAddToPlaylist}, true},
		// "stop" outranks "next"
		{"stop and go next", Command{Type: ActionPause}, true},
		{"add to playlist", Command{Type: ActionAddToPlaylist}, true},
		{"play it again", Command{Type: ActionResume}, true},
		{"show playlist", Command{Type: ActionShowPlaylist}, true},
		{"hello there", Command{}, false},
		{"   ", Command{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.transcript, func(t *testing.T) {
			got, ok := ParseCommand(tt.transcript)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAction(t *testing.T) {
	a, ok := ParseAction("showHistory")
	assert.True(t, ok)
	assert.Equal(t, ActionShowHistory, a)
	_, ok = ParseAction("dance")
	assert.False(t, ok)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		scores  map[string]float64
		want    Detection
		trigger bool
	}{
		{"happy", map[string]float64{"happy": 0.9, "sad": 0.05}, Detection{"happy", 0.9, domain.MoodHappy}, true},
		{"angry is energetic", map[string]float64{"angry": 0.6, "neutral": 0.3}, Detection{"angry", 0.6, domain.MoodEnergetic}, true},
		{"surprised is love", map[string]float64{"surprised": 0.5}, Detection{"surprised", 0.5, domain.MoodLove}, true},
		{"unknown is calm", map[string]float64{"bored": 0.8}, Detection{"bored", 0.8, domain.MoodCalm}, true},
		{"exactly threshold does not trigger", map[string]float64{"sad": 0.4, "happy": 0.3}, Detection{"sad", 0.4, domain.MoodSad}, false},
		{"tie goes to later expression", map[string]float64{"sad": 0.5, "happy": 0.5}, Detection{"sad", 0.5, domain.MoodSad}, true},
		{"tie with neutral", map[string]float64{"neutral": 0.45, "surprised": 0.45}, Detection{"surprised", 0.45, domain.MoodLove}, true},
		{"unknown names come last", map[string]float64{"bored": 0.5, "angry": 0.5}, Detection{"bored", 0.5, domain.MoodCalm}, true},
		{"empty", nil, Detection{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.scores)
			assert.Equal(t, tt.trigger, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetection_Label(t *testing.T) {
	assert.Equal(t, "happy (87%)", Detection{Expression: "happy", Confidence: 0.874}.Label())
}

func TestPoller_SuppressesRepeats(t *testing.T) {
	frames := []map[string]float64{
		{"happy": 0.9},
		{"happy": 0.8},
		{"sad": 0.3, "neutral": 0.2},
		nil,
		{"angry": 0.7},
		{"happy": 0.95},
	}
	var mu sync.Mutex
	i := 0
	src := SourceFunc(func(ctx context.Context) (map[string]float64, error) {
		mu.Lock()
		defer mu.Unlock()
		if i == 2 {
			i++
			return nil, errors.New("camera busy")
		}
		if i >= len(frames) {
			return nil, nil
		}
		f := frames[i]
		i++
		return f, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var got []domain.Mood
	done := make(chan struct{})
	p := NewPoller(src, func(_ context.Context, d Detection) {
		got = append(got, d.Mood)
		if len(got) == 3 {
			close(done)
		}
	}, WithInterval(time.Millisecond))

	errc := make(chan error, 1)
	go func() { errc <- p.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("poller did not report three moods")
	}
	cancel()
	require.ErrorIs(t, <-errc, context.Canceled)
	assert.Equal(t, []domain.Mood{domain.MoodHappy, domain.MoodEnergetic, domain.MoodHappy}, got)
}
