package domain

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultTheme is assigned to new users.
const DefaultTheme = "default"

// Theme is a color scheme the client can switch to.
type Theme struct {
	ID         string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	Background string `yaml:"background" json:"background"`
	Primary    string `yaml:"primary" json:"primary"`
	Secondary  string `yaml:"secondary" json:"secondary"`
}

//go:embed themes.yaml
var themesYAML []byte

var loadThemes = sync.OnceValues(func() ([]Theme, error) {
	var themes []Theme
	if err := yaml.Unmarshal(themesYAML, &themes); err != nil {
		return nil, fmt.Errorf("domain: parse themes: %w", err)
	}
	return themes, nil
})

// Themes returns the built-in themes in display order.
func Themes() []Theme {
	themes, err := loadThemes()
	if err != nil {
		panic(err)
	}
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// LookupTheme finds a theme by id.
func LookupTheme(id string) (Theme, error) {
	for _, t := range Themes() {
		if t.ID == id {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %q", ErrInvalidTheme, id)
}

// Greeting returns the time-of-day salutation shown above the mood picker.
func Greeting(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Good Morning ☀️"
	case hour >= 12 && hour < 17:
		return "Good Afternoon 🌤️"
	case hour >= 17 && hour < 21:
		return "Good Evening 🌆"
	default:
		return "Good Night 🌙"
	}
}
