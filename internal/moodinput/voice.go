// Package moodinput turns voice transcripts and facial-expression scores
// into player commands.
package moodinput

import (
	"strings"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

// Action names a player command.
type Action string

const (
	ActionChangeMood    Action = "changeMood"
	ActionPause         Action = "pause"
	ActionResume        Action = "resume"
	ActionShuffle       Action = "shuffle"
	ActionNext          Action = "next"
	ActionShowHistory   Action = "showHistory"
	ActionShowPlaylist  Action = "showPlaylist"
	ActionAddToPlaylist Action = "addToPlaylist"
)

// Command is a parsed instruction. Mood is set only for ActionChangeMood.
type Command struct {
	Type Action      `json:"type"`
	Mood domain.Mood `json:"mood,omitempty"`
}

type rule struct {
	phrases []string
	cmd     Command
	// occurrences of except are removed before matching, so "play" does
	// not fire on "playlist"
	except string
}

// Checked top to bottom; the first rule with a matching phrase wins.
// "play" alone is a resume, so mood phrases must come first.
var voiceRules = []rule{
	{[]string{"play love", "love songs"}, Command{Type: ActionChangeMood, Mood: domain.MoodLove}, ""},
	{[]string{"play happy", "happy songs"}, Command{Type: ActionChangeMood, Mood: domain.MoodHappy}, ""},
	{[]string{"play sad", "sad songs"}, Command{Type: ActionChangeMood, Mood: domain.MoodSad}, ""},
	{[]string{"play energetic", "energetic songs", "energy"}, Command{Type: ActionChangeMood, Mood: domain.MoodEnergetic}, ""},
	{[]string{"play calm", "calm songs", "relax"}, Command{Type: ActionChangeMood, Mood: domain.MoodCalm}, ""},
	{[]string{"stop"}, Command{Type: ActionPause}, ""},
	{[]string{"resume", "continue", "play"}, Command{Type: ActionResume}, "playlist"},
	{[]string{"shuffle", "random"}, Command{Type: ActionShuffle}, ""},
	{[]string{"next", "skip"}, Command{Type: ActionNext}, ""},
	{[]string{"show history", "recent", "history"}, Command{Type: ActionShowHistory}, ""},
	{[]string{"show playlist", "my playlist"}, Command{Type: ActionShowPlaylist}, ""},
	{[]string{"add to playlist", "save song"}, Command{Type: ActionAddToPlaylist}, ""},
}

// ParseCommand matches a spoken transcript against the known phrases.
// Matching is case-insensitive substring search, so "please skip this"
// is a next and "keep playing" a resume; "playlist" alone never counts
// as "play". ok is false when nothing matched.
func ParseCommand(transcript string) (cmd Command, ok bool) {
	text := strings.ToLower(transcript)
	if strings.TrimSpace(text) == "" {
		return Command{}, false
	}
	for _, r := range voiceRules {
		haystack := text
		if r.except != "" {
			haystack = strings.ReplaceAll(text, r.except, " ")
		}
		for _, p := range r.phrases {
			if strings.Contains(haystack, p) {
				return r.cmd, true
			}
		}
	}
	return Command{}, false
}

// ParseAction accepts the wire name of an action, as sent by clients that
// do their own speech handling.
func ParseAction(s string) (Action, bool) {
	switch a := Action(s); a {
	case ActionChangeMood, ActionPause, ActionResume, ActionShuffle, ActionNext,
		ActionShowHistory, ActionShowPlaylist, ActionAddToPlaylist:
		return a, true
	}
	return "", false
}
