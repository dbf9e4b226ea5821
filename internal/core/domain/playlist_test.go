package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestPlaylist_Add(t *testing.T) {
	tests := []struct {
		name           string
		initialEntries []PlaylistEntry
		toAdd          PlaylistEntry
		wantErr        error
		wantLen        int
	}{
		{
			name:           "adds new song successfully",
			initialEntries: []PlaylistEntry{},
			toAdd:          PlaylistEntry{ID: 1, UserID: 7, SongName: "Song One", SongURL: "http://x/love/one.mp3", Mood: MoodLove},
			wantErr:        nil,
			wantLen:        1,
		},
		{
			name: "fails when adding song with duplicate URL",
			initialEntries: []PlaylistEntry{
				{ID: 1, UserID: 7, SongName: "Existing", SongURL: "http://x/love/one.mp3", Mood: MoodLove},
			},
			toAdd:   PlaylistEntry{ID: 2, UserID: 7, SongName: "Song One again", SongURL: "http://x/love/one.mp3", Mood: MoodLove},
			wantErr: ErrDuplicateSong,
			wantLen: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &Playlist{UserID: 7}
			// seed initial entries directly
			p.Entries = append(p.Entries, tc.initialEntries...)

			err := p.Add(tc.toAdd)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got: %v", err)
				}
			} else if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}

			if got := len(p.Entries); got != tc.wantLen {
				t.Fatalf("expected %d entries, got %d", tc.wantLen, got)
			}

			if tc.wantErr == nil {
				last := p.Entries[len(p.Entries)-1]
				if !reflect.DeepEqual(last, tc.toAdd) {
					t.Fatalf("last entry mismatch: want %+v, got %+v", tc.toAdd, last)
				}
			}
		})
	}
}

func TestNewPlaylistEntry(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		song    Song
		wantErr error
	}{
		{
			name:   "valid",
			userID: 3,
			song:   Song{Name: "One", URL: "http://x/one.mp3", Mood: MoodSad},
		},
		{
			name:    "missing user",
			userID:  0,
			song:    Song{Name: "One", URL: "http://x/one.mp3", Mood: MoodSad},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "missing url",
			userID:  3,
			song:    Song{Name: "One", Mood: MoodSad},
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "unknown mood",
			userID:  3,
			song:    Song{Name: "One", URL: "http://x/one.mp3", Mood: "grumpy"},
			wantErr: ErrInvalidMood,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, err := NewPlaylistEntry(tc.userID, tc.song)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected error %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if e.Song() != tc.song {
				t.Fatalf("round trip mismatch: want %+v, got %+v", tc.song, e.Song())
			}
		})
	}
}
