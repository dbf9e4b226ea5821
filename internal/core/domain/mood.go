package domain

import (
	"fmt"
	"strings"
)

// Mood is one of the fixed tags used to filter the catalog and theme the player.
type Mood string

const (
	MoodLove      Mood = "love"
	MoodHappy     Mood = "happy"
	MoodSad       Mood = "sad"
	MoodEnergetic Mood = "energetic"
	MoodCalm      Mood = "calm"
)

// DefaultMood is selected for sessions that never picked one.
const DefaultMood = MoodLove

var allMoods = []Mood{MoodLove, MoodHappy, MoodSad, MoodEnergetic, MoodCalm}

type moodStyle struct {
	emoji    string
	color    string
	gradient [2]string
	palette  [3]string
}

var moodStyles = map[Mood]moodStyle{
	MoodLove: {
		emoji:    "💖",
		color:    "#f093fb",
		gradient: [2]string{"#fbc2eb", "#a6c1ee"},
		palette:  [3]string{"#f093fb", "#f5576c", "#ff9a9e"},
	},
	MoodHappy: {
		emoji:    "😊",
		color:    "#ffeaa7",
		gradient: [2]string{"#ffeaa7", "#fdcb6e"},
		palette:  [3]string{"#ffeaa7", "#fdcb6e", "#fab1a0"},
	},
	MoodSad: {
		emoji:    "😢",
		color:    "#a8edea",
		gradient: [2]string{"#a8edea", "#fed6e3"},
		palette:  [3]string{"#a8edea", "#fed6e3", "#b2e7e8"},
	},
	MoodEnergetic: {
		emoji:    "⚡",
		color:    "#fa709a",
		gradient: [2]string{"#fa709a", "#fee140"},
		palette:  [3]string{"#fa709a", "#fee140", "#ff6b6b"},
	},
	MoodCalm: {
		emoji:    "😌",
		color:    "#d299c2",
		gradient: [2]string{"#d299c2", "#fef9d7"},
		palette:  [3]string{"#d299c2", "#fef9d7", "#a8c0ff"},
	},
}

// AllMoods returns the moods in display order.
func AllMoods() []Mood {
	out := make([]Mood, len(allMoods))
	copy(out, allMoods)
	return out
}

// ParseMood accepts a mood name in any case, surrounded by whitespace or not.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := moodStyles[m]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidMood, s)
	}
	return m, nil
}

// Valid reports whether m is one of the five known moods.
func (m Mood) Valid() bool {
	_, ok := moodStyles[m]
	return ok
}

func (m Mood) String() string { return string(m) }

// Emoji falls back to a note for unknown moods.
func (m Mood) Emoji() string {
	if s, ok := moodStyles[m]; ok {
		return s.emoji
	}
	return "🎵"
}

// Color returns the accent color, or the app primary for unknown moods.
func (m Mood) Color() string {
	if s, ok := moodStyles[m]; ok {
		return s.color
	}
	return "#667eea"
}

// Gradient returns the two CSS stops used behind mood cards.
func (m Mood) Gradient() [2]string {
	if s, ok := moodStyles[m]; ok {
		return s.gradient
	}
	return [2]string{"#667eea", "#764ba2"}
}

// Palette returns the visualizer bar colors, top to bottom. Unknown moods use calm.
func (m Mood) Palette() [3]string {
	if s, ok := moodStyles[m]; ok {
		return s.palette
	}
	return moodStyles[MoodCalm].palette
}

func (m Mood) index() int {
	for i, candidate := range allMoods {
		if candidate == m {
			return i
		}
	}
	return len(allMoods)
}
