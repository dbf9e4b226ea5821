package domain

import "time"

// HistoryLimit caps the number of plays kept per user.
const HistoryLimit = 50

// History is a most-recent-first list of plays, unique by URL.
type History []HistoryEntry

// Record puts song at the front stamped with at, drops any older play of
// the same URL and trims the list to HistoryLimit. The receiver is not modified.
func (h History) Record(song Song, at time.Time) History {
	next := make(History, 0, min(len(h)+1, HistoryLimit))
	next = append(next, HistoryEntry{Song: song, PlayedAt: at})
	for _, e := range h {
		if len(next) == HistoryLimit {
			break
		}
		if e.URL == song.URL {
			continue
		}
		next = append(next, e)
	}
	return next
}

// Songs strips the timestamps.
func (h History) Songs() []Song {
	out := make([]Song, len(h))
	for i, e := range h {
		out[i] = e.Song
	}
	return out
}
