package domain

import (
	"fmt"
	"math"
	"slices"
	"time"
)

const (
	// EstimatedSongMinutes is used for plays whose duration is unknown.
	EstimatedSongMinutes = 3.5
	topSongsLimit        = 10
	activityDays         = 7
)

// SongCount is a bar of the top songs chart.
type SongCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DayCount is a point of the weekly activity chart.
type DayCount struct {
	Day   string `json:"day"`
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Stats summarises a listening history.
type Stats struct {
	TotalSongs       int          `json:"totalSongs"`
	TotalMinutes     float64      `json:"totalMinutes"`
	TotalTime        string       `json:"totalTime"`
	TopMood          string       `json:"topMood"`
	TopSongs         []SongCount  `json:"topSongs"`
	MoodDistribution map[Mood]int `json:"moodDistribution"`
	WeeklyActivity   []DayCount   `json:"weeklyActivity"`
	AveragePerDay    int          `json:"averagePerDay"`
	Streak           int          `json:"streak"`
}

// ComputeStats aggregates history relative to now. Calendar days are
// taken in now's location.
func ComputeStats(history []HistoryEntry, now time.Time) Stats {
	stats := Stats{
		TopMood:          "N/A",
		TopSongs:         []SongCount{},
		MoodDistribution: map[Mood]int{},
		WeeklyActivity:   weeklyActivity(history, now),
	}
	if len(history) == 0 {
		stats.TotalTime = FormatDuration(0)
		return stats
	}

	stats.TotalSongs = len(history)
	for _, e := range history {
		if e.DurationSec > 0 {
			stats.TotalMinutes += e.DurationSec / 60
		} else {
			stats.TotalMinutes += EstimatedSongMinutes
		}
	}
	stats.TotalTime = FormatDuration(stats.TotalMinutes)

	stats.TopSongs = topSongs(history)

	var moodOrder []Mood
	for _, e := range history {
		if _, seen := stats.MoodDistribution[e.Mood]; !seen {
			moodOrder = append(moodOrder, e.Mood)
		}
		stats.MoodDistribution[e.Mood]++
	}
	best := 0
	for _, m := range moodOrder {
		if c := stats.MoodDistribution[m]; c > best {
			best = c
			stats.TopMood = string(m)
		}
	}

	weekAgo := now.AddDate(0, 0, -activityDays)
	recent := 0
	for _, e := range history {
		if !e.PlayedAt.Before(weekAgo) {
			recent++
		}
	}
	stats.AveragePerDay = recent / activityDays
	stats.Streak = Streak(history, now)
	return stats
}

// topSongs counts plays by name; equal counts keep first-appearance order.
func topSongs(history []HistoryEntry) []SongCount {
	counts := map[string]int{}
	var order []string
	for _, e := range history {
		if _, seen := counts[e.Name]; !seen {
			order = append(order, e.Name)
		}
		counts[e.Name]++
	}
	out := make([]SongCount, 0, len(order))
	for _, name := range order {
		out = append(out, SongCount{Name: name, Count: counts[name]})
	}
	slices.SortStableFunc(out, func(a, b SongCount) int { return b.Count - a.Count })
	if len(out) > topSongsLimit {
		out = out[:topSongsLimit]
	}
	return out
}

func weeklyActivity(history []HistoryEntry, now time.Time) []DayCount {
	loc := now.Location()
	perDay := map[string]int{}
	for _, e := range history {
		perDay[dateKey(e.PlayedAt.In(loc))]++
	}
	out := make([]DayCount, 0, activityDays)
	for i := activityDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		key := dateKey(day)
		out = append(out, DayCount{
			Day:   day.Weekday().String()[:3],
			Date:  key,
			Count: perDay[key],
		})
	}
	return out
}

// Streak counts consecutive calendar days with at least one play, ending
// today. A history without a play today has no streak.
func Streak(history []HistoryEntry, now time.Time) int {
	loc := now.Location()
	days := map[string]struct{}{}
	for _, e := range history {
		days[dateKey(e.PlayedAt.In(loc))] = struct{}{}
	}
	streak := 0
	for day := now; ; day = day.AddDate(0, 0, -1) {
		if _, ok := days[dateKey(day)]; !ok {
			return streak
		}
		streak++
	}
}

func dateKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// FormatDuration renders minutes as "1h 5m" or "42m".
func FormatDuration(minutes float64) string {
	if minutes <= 0 || math.IsNaN(minutes) {
		return "0m"
	}
	hours := int(minutes / 60)
	mins := int(math.Mod(minutes, 60))
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// FormatClock renders seconds as "M:SS".
func FormatClock(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) {
		return "0:00"
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
