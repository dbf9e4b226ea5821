package domain

import "errors"

// PlaylistEntry is a song saved to a user's server-side playlist.
type PlaylistEntry struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"userId"`
	SongName string `json:"songName"`
	SongURL  string `json:"songUrl"`
	Mood     Mood   `json:"mood"`
}

// Song converts the entry back to a catalog song.
func (e PlaylistEntry) Song() Song {
	return Song{Name: e.SongName, URL: e.SongURL, Mood: e.Mood}
}

// NewPlaylistEntry validates the fields a client supplies when saving a song.
func NewPlaylistEntry(userID int64, song Song) (PlaylistEntry, error) {
	if userID <= 0 || song.Name == "" || song.URL == "" {
		return PlaylistEntry{}, errors.Join(ErrInvalidArgument, errors.New("domain: userId, songName and songUrl are required"))
	}
	if !song.Mood.Valid() {
		return PlaylistEntry{}, ErrInvalidMood
	}
	return PlaylistEntry{
		UserID:   userID,
		SongName: song.Name,
		SongURL:  song.URL,
		Mood:     song.Mood,
	}, nil
}

// Playlist is the ordered set of entries owned by one user.
type Playlist struct {
	UserID  int64           `json:"userId"`
	Entries []PlaylistEntry `json:"entries"`
}

// Contains reports whether the playlist already holds url.
func (p *Playlist) Contains(url string) bool {
	for _, e := range p.Entries {
		if e.SongURL == url {
			return true
		}
	}
	return false
}

// Add appends e while preventing duplicate URLs. If the URL is already
// present, Add returns ErrDuplicateSong.
func (p *Playlist) Add(e PlaylistEntry) error {
	if p.Contains(e.SongURL) {
		return ErrDuplicateSong
	}
	p.Entries = append(p.Entries, e)
	return nil
}
