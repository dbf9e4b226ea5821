package rest

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
	"github.com/ewilliams-labs/moodtune/internal/visualizer"
)

const (
	defaultCanvasWidth  = 800
	defaultCanvasHeight = 200
	// maxVisualizerFrames caps one response; clients page with offset.
	maxVisualizerFrames = 600
)

type visualizerResponse struct {
	URL        string             `json:"url"`
	Mood       domain.Mood        `json:"mood"`
	FPS        int                `json:"fps"`
	SampleRate int                `json:"sampleRate"`
	BinCount   int                `json:"binCount"`
	FrameCount int                `json:"frameCount"`
	Offset     int                `json:"offset"`
	Frames     [][]visualizer.Bar `json:"frames"`
}

// Visualizer handles GET /api/visualizer?url=&mood=&width=&height=&fps=&offset=&limit=
// It decodes the requested stretch of a catalog song and returns the bars
// of each animation frame in it, at most maxVisualizerFrames at a time.
func (h *Handler) Visualizer(w http.ResponseWriter, r *http.Request, _ int64) {
	q := r.URL.Query()
	songURL := q.Get("url")
	if songURL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}
	width, err := floatParam(q, "width", defaultCanvasWidth)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	height, err := floatParam(q, "height", defaultCanvasHeight)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	fps, err := intParam(q, "fps", visualizer.DefaultFPS)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := intParam(q, "offset", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := intParam(q, "limit", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if fps == 0 {
		fps = visualizer.DefaultFPS
	}
	fps = min(fps, visualizer.MaxFPS)
	if limit == 0 || limit > maxVisualizerFrames {
		limit = maxVisualizerFrames
	}

	song, body, err := h.svc.OpenSong(r.Context(), songURL)
	if err != nil {
		fail(w, r, err)
		return
	}
	defer body.Close()

	audio, err := visualizer.DecodeMP3(body, visualizer.FrameWindow(fps, offset, limit))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "song could not be decoded")
		return
	}

	mood := song.Mood
	if m, err := domain.ParseMood(q.Get("mood")); err == nil {
		mood = m
	}

	a := visualizer.NewAnalyzer()
	spectra := visualizer.Frames(a, audio, fps, offset, limit)
	frames := make([][]visualizer.Bar, 0, len(spectra))
	for _, spectrum := range spectra {
		frames = append(frames, visualizer.Bars(spectrum, width, height, mood))
	}

	total := audio.Total
	if total < 0 {
		total = audio.End()
	}
	writeJSON(w, http.StatusOK, visualizerResponse{
		URL:        song.URL,
		Mood:       mood,
		FPS:        fps,
		SampleRate: audio.SampleRate,
		BinCount:   a.FrequencyBinCount(),
		FrameCount: visualizer.FrameCount(total, audio.SampleRate, fps),
		Offset:     offset,
		Frames:     frames,
	})
}

func floatParam(q url.Values, name string, def float64) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive number", name)
	}
	return v, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return v, nil
}
