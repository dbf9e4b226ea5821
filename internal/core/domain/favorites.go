package domain

import (
	"math/rand/v2"
	"slices"
	"strings"
	"time"
)

// Sort orders accepted by Favorites.Filter.
const (
	SortRecent = "recent"
	SortName   = "name"
	SortMood   = "mood"
)

// Favorites keeps one entry per URL in insertion order.
type Favorites []FavoriteEntry

// Contains reports whether url is favorited.
func (f Favorites) Contains(url string) bool {
	return slices.ContainsFunc(f, func(e FavoriteEntry) bool { return e.URL == url })
}

// Add appends song unless its URL is already present.
func (f Favorites) Add(song Song, at time.Time) (Favorites, bool) {
	if f.Contains(song.URL) {
		return f, false
	}
	next := make(Favorites, len(f), len(f)+1)
	copy(next, f)
	return append(next, FavoriteEntry{Song: song, AddedAt: at}), true
}

// Remove drops the entry with url, if any.
func (f Favorites) Remove(url string) (Favorites, bool) {
	next := make(Favorites, 0, len(f))
	for _, e := range f {
		if e.URL != url {
			next = append(next, e)
		}
	}
	return next, len(next) != len(f)
}

// Toggle adds song when absent and removes it when present. The returned
// bool is the favorite state after the call.
func (f Favorites) Toggle(song Song, at time.Time) (Favorites, bool) {
	if next, removed := f.Remove(song.URL); removed {
		return next, false
	}
	next, _ := f.Add(song, at)
	return next, true
}

// Filter keeps entries whose name contains term (case-insensitive) and
// orders them by sortBy. Unknown orders behave like SortRecent.
func (f Favorites) Filter(term, sortBy string) Favorites {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make(Favorites, 0, len(f))
	for _, e := range f {
		if term == "" || strings.Contains(strings.ToLower(e.Name), term) {
			out = append(out, e)
		}
	}
	switch sortBy {
	case SortName:
		slices.SortStableFunc(out, func(a, b FavoriteEntry) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	case SortMood:
		slices.SortStableFunc(out, func(a, b FavoriteEntry) int {
			return strings.Compare(string(a.Mood), string(b.Mood))
		})
	}
	return out
}

// Songs strips the timestamps.
func (f Favorites) Songs() []Song {
	out := make([]Song, len(f))
	for i, e := range f {
		out[i] = e.Song
	}
	return out
}

// ShuffleSongs returns a Fisher-Yates shuffled copy of songs.
func ShuffleSongs(songs []Song, rnd *rand.Rand) []Song {
	out := slices.Clone(songs)
	if rnd == nil {
		rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}
	rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// FilterSongs keeps songs whose name contains term, ignoring case.
func FilterSongs(songs []Song, term string) []Song {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return songs
	}
	out := make([]Song, 0, len(songs))
	for _, s := range songs {
		if strings.Contains(strings.ToLower(s.Name), term) {
			out = append(out, s)
		}
	}
	return out
}
