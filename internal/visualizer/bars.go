package visualizer

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

// HeightScale leaves headroom above the tallest bar.
const HeightScale = 0.8

// Bar is one drawable column. Stops run top to bottom; Fill is a single
// colour for renderers without gradients.
type Bar struct {
	X      float64   `json:"x"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Stops  [3]string `json:"stops"`
	Fill   string    `json:"fill"`
}

// Bars lays spectrum out across a canvas of width × height. Bars are
// 2.5 times the even share of the width with a one-pixel gap, so the
// upper bins fall off the right edge as they do in the player.
func Bars(spectrum []byte, width, height float64, mood domain.Mood) []Bar {
	if len(spectrum) == 0 {
		return []Bar{}
	}
	palette := mood.Palette()
	stops := parsePalette(palette)

	barWidth := width / float64(len(spectrum)) * 2.5
	bars := make([]Bar, len(spectrum))
	x := 0.0
	for i, v := range spectrum {
		level := float64(v) / 255
		bars[i] = Bar{
			X:      x,
			Width:  barWidth,
			Height: level * height * HeightScale,
			Stops:  palette,
			Fill:   fillAt(stops, level),
		}
		x += barWidth + 1
	}
	return bars
}

func parsePalette(p [3]string) [3]colorful.Color {
	var out [3]colorful.Color
	for i, hex := range p {
		c, err := colorful.Hex(hex)
		if err != nil {
			c = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
		}
		out[i] = c
	}
	return out
}

// fillAt walks the gradient from the bottom stop (level 0) to the top
// stop (level 1), blending in Lab space.
func fillAt(stops [3]colorful.Color, level float64) string {
	bottom, mid, top := stops[2], stops[1], stops[0]
	switch {
	case level <= 0:
		return bottom.Hex()
	case level >= 1:
		return top.Hex()
	case level < 0.5:
		return bottom.BlendLab(mid, level*2).Clamped().Hex()
	}
	return mid.BlendLab(top, (level-0.5)*2).Clamped().Hex()
}
