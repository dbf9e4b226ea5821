package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Strum355/log"
	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
	"github.com/ewilliams-labs/moodtune/internal/moodinput"
)

var faceCmd = &cobra.Command{
	Use:   "face",
	Short: "Drive a player's mood from expression scores on stdin",
	Long: `Reads one JSON object of expression scores per line from stdin, e.g.
{"happy":0.82,"neutral":0.1}, and switches the player's mood on the server
whenever a confident expression maps to a new mood.`,
	RunE: runFace,
}

func init() {
	faceCmd.Flags().String("server", "http://localhost:8081", "moodtune server base URL")
	faceCmd.Flags().String("token", "", "session token from /api/users/login")
	faceCmd.Flags().Duration("interval", moodinput.DefaultPollInterval, "how often to read a score line")
	faceCmd.MarkFlagRequired("token")
}

func runFace(cmd *cobra.Command, args []string) error {
	server, _ := cmd.Flags().GetString("server")
	token, _ := cmd.Flags().GetString("token")
	interval, _ := cmd.Flags().GetDuration("interval")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	client := &moodClient{http: &http.Client{Timeout: 10 * time.Second}, baseURL: strings.TrimRight(server, "/"), token: token}
	source := newLineSource(cmd.InOrStdin(), cancel)
	out := cmd.OutOrStdout()

	poller := moodinput.NewPoller(source, func(ctx context.Context, d moodinput.Detection) {
		if err := client.SetMood(ctx, d.Mood); err != nil {
			log.WithError(err).Warn("failed to change mood")
			return
		}
		fmt.Fprintf(out, "mood → %s %s\n", d.Mood, d.Mood.Emoji())
	},
		moodinput.WithInterval(interval),
		moodinput.WithObserver(func(d moodinput.Detection) { fmt.Fprintln(out, d.Label()) }),
	)

	if err := poller.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// lineSource yields one score set per line and calls done at end of input.
type lineSource struct {
	scanner *bufio.Scanner
	done    func()
}

func newLineSource(r io.Reader, done func()) *lineSource {
	return &lineSource{scanner: bufio.NewScanner(r), done: done}
}

func (s *lineSource) Scores(ctx context.Context) (map[string]float64, error) {
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue
		}
		var scores map[string]float64
		if err := json.Unmarshal([]byte(line), &scores); err != nil {
			return nil, fmt.Errorf("bad score line %q: %w", line, err)
		}
		return scores, nil
	}
	s.done()
	if err := s.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// moodClient switches the mood of the token owner's player.
type moodClient struct {
	http    *http.Client
	baseURL string
	token   string
}

func (c *moodClient) SetMood(ctx context.Context, mood domain.Mood) error {
	body, err := json.Marshal(map[string]domain.Mood{"mood": mood})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/player/mood", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}
