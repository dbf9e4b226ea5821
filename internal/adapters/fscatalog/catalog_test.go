package fscatalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

func writeSong(t *testing.T, root, mood, name string, data []byte) {
	t.Helper()
	dir := filepath.Join(root, mood)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
}

// id3v23 builds a minimal ID3v2.3 header holding a single TIT2 frame.
func id3v23(title string) []byte {
	payload := append([]byte{0}, []byte(title)...) // ISO-8859-1 encoding byte
	frame := []byte("TIT2")
	size := len(payload)
	frame = append(frame, byte(size>>24), byte(size>>16), byte(size>>8), byte(size), 0, 0)
	frame = append(frame, payload...)

	n := len(frame)
	header := []byte{'I', 'D', '3', 3, 0, 0,
		byte(n >> 21 & 0x7f), byte(n >> 14 & 0x7f), byte(n >> 7 & 0x7f), byte(n & 0x7f)}
	return append(header, frame...)
}

func TestCatalog_ListSongs(t *testing.T) {
	root := t.TempDir()
	writeSong(t, root, "happy", "b-side.mp3", []byte("audio"))
	writeSong(t, root, "happy", "a song.mp3", []byte("audio"))
	writeSong(t, root, "happy", "notes.txt", []byte("x"))
	writeSong(t, root, "happy", "tagged.mp3", id3v23("Zebra Dance"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "happy", "nested.mp3"), 0o755))

	c := New(root, "http://localhost:8081/")
	songs, err := c.ListSongs(context.Background(), domain.MoodHappy)
	require.NoError(t, err)
	assert.Equal(t, []domain.Song{
		{Name: "a song", URL: "http://localhost:8081/songs/happy/a%20song.mp3", Mood: domain.MoodHappy},
		{Name: "b-side", URL: "http://localhost:8081/songs/happy/b-side.mp3", Mood: domain.MoodHappy},
		{Name: "Zebra Dance", URL: "http://localhost:8081/songs/happy/tagged.mp3", Mood: domain.MoodHappy},
	}, songs)

	empty, err := c.ListSongs(context.Background(), domain.MoodSad)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCatalog_LocalPath(t *testing.T) {
	root := t.TempDir()
	c := New(root, "http://localhost:8081")

	p, ok := c.LocalPath("http://localhost:8081/songs/calm/a%20song.mp3")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "calm", "a song.mp3"), p)

	for _, bad := range []string{
		"http://elsewhere/songs/calm/a.mp3",
		"http://localhost:8081/songs/calm/../../etc/passwd.mp3",
		"http://localhost:8081/songs/a.mp3",
		"http://localhost:8081/songs/calm/readme.txt",
		"http://localhost:8081/songs/calm/deep/a.mp3",
	} {
		_, ok := c.LocalPath(bad)
		assert.False(t, ok, bad)
	}
}
