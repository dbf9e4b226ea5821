package moodinput

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

// TriggerConfidence is the score an expression must exceed before it
// changes the mood.
const TriggerConfidence = 0.4

var expressionMoods = map[string]domain.Mood{
	"happy":     domain.MoodHappy,
	"sad":       domain.MoodSad,
	"angry":     domain.MoodEnergetic,
	"neutral":   domain.MoodCalm,
	"surprised": domain.MoodLove,
	"fearful":   domain.MoodCalm,
	"disgusted": domain.MoodCalm,
}

// expressionOrder is the order expression detectors report scores in.
var expressionOrder = []string{"neutral", "happy", "sad", "angry", "fearful", "disgusted", "surprised"}

// MoodForExpression maps a facial expression to a music mood. Unknown
// expressions map to calm.
func MoodForExpression(expression string) domain.Mood {
	if m, ok := expressionMoods[expression]; ok {
		return m
	}
	return domain.MoodCalm
}

// Detection is the dominant expression of one snapshot.
type Detection struct {
	Expression string      `json:"expression"`
	Confidence float64     `json:"confidence"`
	Mood       domain.Mood `json:"mood"`
}

// Label renders the detection like "happy (87%)".
func (d Detection) Label() string {
	return fmt.Sprintf("%s (%.0f%%)", d.Expression, d.Confidence*100)
}

// Triggers reports whether the detection is confident enough to act on.
func (d Detection) Triggers() bool {
	return d.Confidence > TriggerConfidence
}

// Classify picks the highest-scoring expression. Ties go to the name
// reported last: known expressions in detector order, then unknown names
// alphabetically. ok is false for an empty score set or when
// the winner does not exceed TriggerConfidence; the Detection is still
// returned so callers can display it.
func Classify(scores map[string]float64) (Detection, bool) {
	if len(scores) == 0 {
		return Detection{}, false
	}
	best := ""
	bestScore := math.Inf(-1)
	for _, name := range reportOrder(scores) {
		if s := scores[name]; s >= bestScore {
			best, bestScore = name, s
		}
	}
	d := Detection{Expression: best, Confidence: bestScore, Mood: MoodForExpression(best)}
	return d, d.Triggers()
}

func reportOrder(scores map[string]float64) []string {
	names := make([]string, 0, len(scores))
	for _, name := range expressionOrder {
		if _, ok := scores[name]; ok {
			names = append(names, name)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(scores)) {
		if !slices.Contains(expressionOrder, name) {
			names = append(names, name)
		}
	}
	return names
}
