// Package fscatalog lists songs from a directory tree laid out as
// <root>/<mood>/<file>.mp3.
package fscatalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dhowden/tag"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
	"github.com/ewilliams-labs/moodtune/internal/core/ports"
)

const songExt = ".mp3"

// SongsPath is the URL path prefix songs are served under.
const SongsPath = "/songs/"

var (
	_ ports.SongCatalog       = (*Catalog)(nil)
	_ ports.LocalPathResolver = (*Catalog)(nil)
)

// Catalog implements ports.SongCatalog over a local directory.
type Catalog struct {
	root    string
	baseURL string
}

// New returns a catalog rooted at root whose song URLs start with
// publicBaseURL + SongsPath.
func New(root, publicBaseURL string) *Catalog {
	return &Catalog{root: root, baseURL: strings.TrimRight(publicBaseURL, "/")}
}

// Root returns the directory songs are read from.
func (c *Catalog) Root() string { return c.root }

// ListSongs returns the .mp3 files of the mood folder sorted by name,
// ignoring case. A missing folder is an empty listing.
func (c *Catalog) ListSongs(ctx context.Context, mood domain.Mood) ([]domain.Song, error) {
	dir := filepath.Join(c.root, string(mood))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Song{}, nil
		}
		return nil, fmt.Errorf("fs catalog: read %s: %w", dir, err)
	}

	songs := make([]domain.Song, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !strings.HasSuffix(e.Name(), songExt) {
			continue
		}
		songs = append(songs, domain.Song{
			Name: songTitle(filepath.Join(dir, e.Name())),
			URL:  c.baseURL + SongsPath + url.PathEscape(string(mood)) + "/" + url.PathEscape(e.Name()),
			Mood: mood,
		})
	}
	slices.SortFunc(songs, func(a, b domain.Song) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return songs, nil
}

// songTitle prefers the ID3 title and falls back to the file name.
func songTitle(p string) string {
	fallback := strings.TrimSuffix(filepath.Base(p), songExt)
	f, err := os.Open(p)
	if err != nil {
		return fallback
	}
	defer f.Close()
	m, err := tag.ReadFrom(f)
	if err != nil {
		return fallback
	}
	if title := strings.TrimSpace(m.Title()); title != "" {
		return title
	}
	return fallback
}

// LocalPath maps a song URL produced by this catalog back to its file.
func (c *Catalog) LocalPath(songURL string) (string, bool) {
	prefix := c.baseURL + SongsPath
	if !strings.HasPrefix(songURL, prefix) {
		return "", false
	}
	rel, err := url.PathUnescape(strings.TrimPrefix(songURL, prefix))
	if err != nil {
		return "", false
	}
	return c.Resolve(rel)
}

// Resolve maps "<mood>/<file>" to a file under root, rejecting anything
// that is not exactly one folder deep or is not a song.
func (c *Catalog) Resolve(rel string) (string, bool) {
	clean := path.Clean("/" + rel)[1:]
	if clean != rel {
		return "", false
	}
	mood, file, ok := strings.Cut(clean, "/")
	if !ok || mood == "" || file == "" || strings.Contains(file, "/") || !strings.HasSuffix(file, songExt) {
		return "", false
	}
	return filepath.Join(c.root, mood, file), true
}
