package visualizer

import "math"

const (
	DefaultFPS = 30
	MaxFPS     = 60

	// WarmupFrames are analysed ahead of a requested range so smoothing
	// starts from a settled level.
	WarmupFrames = 16
)

// blockLead is decoded ahead of the first warm-up frame for its analysis
// block; it covers 4096 samples at 44.1 kHz.
const blockLead = 0.1

func clampFPS(fps int) int {
	if fps <= 0 {
		return DefaultFPS
	}
	return min(fps, MaxFPS)
}

// FrameWindow is the part of a song Frames needs to produce count frames
// starting at frame first. A zero count reads to the end.
func FrameWindow(fps, first, count int) Window {
	fps = clampFPS(fps)
	w := Window{From: max(float64(first-WarmupFrames)/float64(fps)-blockLead, 0)}
	if count > 0 {
		w.To = float64(first+count) / float64(fps)
	}
	return w
}

// FrameCount is the number of frames covering n samples.
func FrameCount(n, sampleRate, fps int) int {
	if n <= 0 || sampleRate <= 0 {
		return 0
	}
	return int(math.Ceil(float64(n) / float64(sampleRate) * float64(clampFPS(fps))))
}

// Frames runs a over audio at fps and returns the byte spectra of frames
// first to first+count-1, or to the end of audio when count is zero.
// Frame i covers the FFTSize samples ending at (i+1)/fps seconds, the way
// an animation loop would read the analyser while the song plays.
func Frames(a *Analyzer, audio Audio, fps, first, count int) [][]byte {
	if len(audio.Samples) == 0 || audio.SampleRate <= 0 {
		return nil
	}
	fps = clampFPS(fps)
	first = max(first, 0)

	last := FrameCount(audio.End(), audio.SampleRate, fps)
	if count > 0 {
		last = min(first+count, last)
	}
	if first >= last {
		return nil
	}

	step := float64(audio.SampleRate) / float64(fps)
	a.Reset()
	frames := make([][]byte, 0, last-first)
	for i := max(first-WarmupFrames, 0); i < last; i++ {
		end := min(max(int(float64(i+1)*step), audio.Start), audio.End())
		start := max(end-a.FFTSize(), audio.Start)
		spectrum := a.ByteFrequencyData(audio.Samples[start-audio.Start : end-audio.Start])
		if i >= first {
			frames = append(frames, spectrum)
		}
	}
	return frames
}
