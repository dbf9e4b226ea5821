package visualizer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/hajimehoshi/go-mp3"
)

// MaxDecodeSeconds bounds how far into a song DecodeMP3 reads.
const MaxDecodeSeconds = 15 * 60

// Window selects the part of a song to keep, in seconds from the start.
// A zero To reads up to MaxDecodeSeconds.
type Window struct {
	From float64
	To   float64
}

// Audio is a decoded stretch of a song.
type Audio struct {
	// Samples are mono in [-1,1]; Samples[0] is sample Start of the song.
	Samples    []float64
	Start      int
	SampleRate int
	// Total is the length of the whole song in samples, or -1 when the
	// source cannot report it.
	Total int
}

// End is the song position just past the last decoded sample.
func (a Audio) End() int { return a.Start + len(a.Samples) }

// DecodeMP3 decodes r and keeps the mono samples inside w. Audio before
// w.From is decoded and discarded; reading stops at w.To.
func DecodeMP3(r io.Reader, w Window) (Audio, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return Audio{}, fmt.Errorf("visualizer: decode: %w", err)
	}
	rate := dec.SampleRate()
	if rate <= 0 {
		return Audio{}, errors.New("visualizer: decoder reported no sample rate")
	}

	limit := MaxDecodeSeconds * rate
	total := -1
	if n := dec.Length(); n >= 0 {
		// 16-bit stereo
		total = min(int(n/4), limit)
	}
	if w.To > 0 {
		limit = min(limit, int(math.Ceil(w.To*float64(rate))))
	}
	from := min(max(int(w.From*float64(rate)), 0), limit)

	out := Audio{Start: from, SampleRate: rate, Total: total}
	out.Samples = make([]float64, 0, min(limit-from, rate*10))

	buf := make([]byte, 4096)
	var carry []byte
	pos := 0
	for pos < limit {
		n, err := dec.Read(buf)
		chunk := append(carry, buf[:n]...)
		whole := len(chunk) - len(chunk)%4
		for i := 0; i < whole && pos < limit; i += 4 {
			if pos >= from {
				left := int16(binary.LittleEndian.Uint16(chunk[i:]))
				right := int16(binary.LittleEndian.Uint16(chunk[i+2:]))
				out.Samples = append(out.Samples, (float64(left)+float64(right))/2/32768)
			}
			pos++
		}
		carry = append(carry[:0], chunk[whole:]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return Audio{}, fmt.Errorf("visualizer: read: %w", err)
		}
	}
	if pos == 0 {
		return Audio{}, errors.New("visualizer: no samples decoded")
	}
	if out.Total < 0 && pos < limit {
		// reached the end of the stream
		out.Total = pos
	}
	return out, nil
}
