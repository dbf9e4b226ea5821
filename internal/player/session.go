package player

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Strum355/log"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
	"github.com/ewilliams-labs/moodtune/internal/core/ports"
	"github.com/ewilliams-labs/moodtune/internal/moodinput"
)

// Library is what a session needs from the rest of the application.
type Library interface {
	ListSongs(ctx context.Context, mood domain.Mood) ([]domain.Song, error)
	RecordPlay(ctx context.Context, userID int64, song domain.Song) error
	AddToPlaylist(ctx context.Context, userID int64, song domain.Song) (domain.PlaylistEntry, error)
	ShuffledFavorites(ctx context.Context, userID int64) ([]domain.Song, error)
}

var (
	// ErrNothingPlaying is returned by operations that need a current song.
	ErrNothingPlaying = errors.New("nothing is playing")
	// ErrNoFavorites is returned when favorites playback finds an empty list.
	ErrNoFavorites = errors.New("no favorites to play")
)

// Views a client should navigate to after a voice command.
const (
	ViewStatistics = "statistics"
	ViewFavorites  = "favorites"
)

// Snapshot is a read-only copy of a session.
type Snapshot struct {
	State        State         `json:"state"`
	Current      *domain.Song  `json:"current"`
	Queue        []domain.Song `json:"queue"`
	Volume       float64       `json:"volume"`
	Position     float64       `json:"position"`
	Duration     float64       `json:"duration"`
	PositionText string        `json:"positionText"`
	DurationText string        `json:"durationText"`
	Mood         domain.Mood   `json:"mood"`
	MoodEmoji    string        `json:"moodEmoji"`
	Songs        []domain.Song `json:"songs"`
	Greeting     string        `json:"greeting"`
	View         string        `json:"view,omitempty"`
}

// Session is one user's player. All methods are safe for concurrent use.
type Session struct {
	userID int64
	lib    Library
	bus    *Bus
	now    func() time.Time
	intn   func(int) int

	mu       sync.Mutex
	state    State
	current  *domain.Song
	queue    []domain.Song
	volume   float64
	position float64
	duration float64
	mood     domain.Mood
	songs    []domain.Song
	loaded   bool
	view     string
}

func newSession(userID int64, lib Library, bus *Bus, now func() time.Time, intn func(int) int) *Session {
	return &Session{
		userID: userID,
		lib:    lib,
		bus:    bus,
		now:    now,
		intn:   intn,
		volume: 1,
		mood:   domain.DefaultMood,
	}
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:        s.state,
		Queue:        slices.Clone(s.queue),
		Volume:       s.volume,
		Position:     s.position,
		Duration:     s.duration,
		PositionText: domain.FormatClock(s.position),
		DurationText: domain.FormatClock(s.duration),
		Mood:         s.mood,
		MoodEmoji:    s.mood.Emoji(),
		Songs:        slices.Clone(s.songs),
		Greeting:     domain.Greeting(s.now().Hour()),
		View:         s.view,
	}
	if snap.Queue == nil {
		snap.Queue = []domain.Song{}
	}
	if snap.Songs == nil {
		snap.Songs = []domain.Song{}
	}
	if s.current != nil {
		cur := *s.current
		snap.Current = &cur
	}
	return snap
}

func (s *Session) publishLocked(action string) Snapshot {
	snap := s.snapshotLocked()
	if s.bus != nil {
		s.bus.publish(Event{UserID: s.userID, Action: action, Snapshot: snap, At: s.now()})
	}
	return snap
}

// Play starts song from the beginning and records it in history.
func (s *Session) Play(ctx context.Context, song domain.Song) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.playLocked(ctx, song); err != nil {
		return s.snapshotLocked(), err
	}
	return s.publishLocked("play"), nil
}

func (s *Session) playLocked(ctx context.Context, song domain.Song) error {
	if song.URL == "" {
		return fmt.Errorf("player: %w: song url is required", domain.ErrInvalidArgument)
	}
	s.current = &song
	s.state = Playing
	s.position = 0
	s.duration = song.DurationSec
	s.view = ""
	if err := s.lib.RecordPlay(ctx, s.userID, song); err != nil {
		log.WithError(err).Warn("player: failed to record play")
	}
	return nil
}

// Pause is a no-op unless playing.
func (s *Session) Pause() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.CanPause() {
		return s.snapshotLocked()
	}
	s.state = Paused
	return s.publishLocked("pause")
}

// Resume continues a paused or stopped song. With no current song it
// plays a random song of the current mood.
func (s *Session) Resume(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resumeLocked(ctx)
}

func (s *Session) resumeLocked(ctx context.Context) (Snapshot, error) {
	switch {
	case s.state == Playing:
		return s.snapshotLocked(), nil
	case s.current != nil:
		s.state = Playing
		return s.publishLocked("resume"), nil
	}
	if err := s.playRandomLocked(ctx); err != nil {
		return s.snapshotLocked(), err
	}
	return s.publishLocked("resume"), nil
}

// Toggle pauses when playing and resumes otherwise.
func (s *Session) Toggle(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Playing {
		s.state = Paused
		return s.publishLocked("pause"), nil
	}
	return s.resumeLocked(ctx)
}

// Stop unloads the current song; the queue is kept.
func (s *Session) Stop() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Stopped && s.current == nil {
		return s.snapshotLocked()
	}
	s.state = Stopped
	s.current = nil
	s.position = 0
	s.duration = 0
	return s.publishLocked("stop")
}

// Enqueue appends song to the play-next queue.
func (s *Session) Enqueue(song domain.Song) (Snapshot, error) {
	if song.URL == "" {
		return s.Snapshot(), fmt.Errorf("player: %w: song url is required", domain.ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, song)
	return s.publishLocked("enqueue"), nil
}

// Next plays the head of the queue, or a random song of the current mood
// when the queue is empty. It is also what happens when a song ends.
func (s *Session) Next(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextLocked(ctx)
}

func (s *Session) nextLocked(ctx context.Context) (Snapshot, error) {
	if len(s.queue) > 0 {
		head := s.queue[0]
		s.queue = slices.Delete(s.queue, 0, 1)
		if err := s.playLocked(ctx, head); err != nil {
			return s.snapshotLocked(), err
		}
		return s.publishLocked("next"), nil
	}
	if err := s.playRandomLocked(ctx); err != nil {
		return s.snapshotLocked(), err
	}
	return s.publishLocked("next"), nil
}

// Shuffle plays a random song of the current mood, ignoring the queue.
func (s *Session) Shuffle(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.playRandomLocked(ctx); err != nil {
		return s.snapshotLocked(), err
	}
	return s.publishLocked("shuffle"), nil
}

func (s *Session) playRandomLocked(ctx context.Context) error {
	if !s.loaded {
		if err := s.loadLocked(ctx, s.mood); err != nil {
			return err
		}
	}
	if len(s.songs) == 0 {
		return &ports.NoSongsError{Mood: s.mood}
	}
	return s.playLocked(ctx, s.songs[s.intn(len(s.songs))])
}

func (s *Session) loadLocked(ctx context.Context, mood domain.Mood) error {
	songs, err := s.lib.ListSongs(ctx, mood)
	if err != nil {
		return fmt.Errorf("player: load %s songs: %w", mood, err)
	}
	s.mood = mood
	s.songs = songs
	s.loaded = true
	return nil
}

// ChangeMood loads the listing for mood and plays a random song from it.
// An empty listing still switches the mood and reports ports.ErrNoSongs.
func (s *Session) ChangeMood(ctx context.Context, mood domain.Mood) (Snapshot, error) {
	if !mood.Valid() {
		return s.Snapshot(), fmt.Errorf("player: %w: %q", domain.ErrInvalidMood, mood)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx, mood); err != nil {
		return s.snapshotLocked(), err
	}
	if err := s.playRandomLocked(ctx); err != nil {
		s.publishLocked("mood")
		return s.snapshotLocked(), err
	}
	return s.publishLocked("mood"), nil
}

// Seek moves to percent (0-100) of the current song.
func (s *Session) Seek(percent float64) (Snapshot, error) {
	if percent < 0 || percent > 100 {
		return s.Snapshot(), fmt.Errorf("player: %w: seek percent must be 0-100", domain.ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return s.snapshotLocked(), ErrNothingPlaying
	}
	s.position = percent / 100 * s.duration
	return s.publishLocked("seek"), nil
}

// SetVolume clamps v to [0,1].
func (s *Session) SetVolume(v float64) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = min(max(v, 0), 1)
	return s.publishLocked("volume")
}

// Progress records the playback position the client reports for the song
// at url. Reports for any other song are ignored. A position at or past
// the duration counts as the song ending.
func (s *Session) Progress(ctx context.Context, url string, position, duration float64) (Snapshot, error) {
	if url == "" {
		return s.Snapshot(), fmt.Errorf("player: %w: song url is required", domain.ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return s.snapshotLocked(), ErrNothingPlaying
	}
	if s.current.URL != url {
		return s.snapshotLocked(), nil
	}
	if duration > 0 {
		s.duration = duration
	}
	s.position = max(position, 0)
	if s.duration > 0 && s.position >= s.duration {
		return s.nextLocked(ctx)
	}
	return s.snapshotLocked(), nil
}

// PlayFavorites queues the user's favorites in random order and starts
// the first one.
func (s *Session) PlayFavorites(ctx context.Context) (Snapshot, error) {
	songs, err := s.lib.ShuffledFavorites(ctx, s.userID)
	if err != nil {
		return s.Snapshot(), fmt.Errorf("player: %w", err)
	}
	if len(songs) == 0 {
		return s.Snapshot(), ErrNoFavorites
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = slices.Clone(songs[1:])
	if err := s.playLocked(ctx, songs[0]); err != nil {
		return s.snapshotLocked(), err
	}
	return s.publishLocked("favorites"), nil
}

// AddCurrentToPlaylist saves the current song to the user's playlist.
func (s *Session) AddCurrentToPlaylist(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return s.snapshotLocked(), ErrNothingPlaying
	}
	if _, err := s.lib.AddToPlaylist(ctx, s.userID, *s.current); err != nil {
		return s.snapshotLocked(), err
	}
	return s.publishLocked("addToPlaylist"), nil
}

// Apply runs a voice or face command.
func (s *Session) Apply(ctx context.Context, cmd moodinput.Command) (Snapshot, error) {
	switch cmd.Type {
	case moodinput.ActionChangeMood:
		return s.ChangeMood(ctx, cmd.Mood)
	case moodinput.ActionShuffle, moodinput.ActionNext:
		return s.Shuffle(ctx)
	case moodinput.ActionPause:
		return s.Pause(), nil
	case moodinput.ActionResume:
		return s.Resume(ctx)
	case moodinput.ActionAddToPlaylist:
		return s.AddCurrentToPlaylist(ctx)
	case moodinput.ActionShowHistory:
		return s.navigate(ViewStatistics), nil
	case moodinput.ActionShowPlaylist:
		return s.navigate(ViewFavorites), nil
	}
	return s.Snapshot(), fmt.Errorf("player: %w: unknown command %q", domain.ErrInvalidArgument, cmd.Type)
}

func (s *Session) navigate(view string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
	return s.publishLocked("navigate")
}
