package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ewilliams-labs/moodtune/internal/core/domain"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the song catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the songs of a mood",
	RunE:  runCatalogList,
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)

	catalogListCmd.Flags().String("mood", string(domain.DefaultMood), "mood to list (love, happy, sad, energetic, calm)")
	catalogListCmd.Flags().String("format", "table", "output format: table, json or yaml")
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	rawMood, _ := cmd.Flags().GetString("mood")
	format, _ := cmd.Flags().GetString("format")
	mood, err := domain.ParseMood(rawMood)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	catalog, _, err := openCatalog(cmd.Context(), cfg.Catalog)
	if err != nil {
		return err
	}
	songs, err := catalog.ListSongs(cmd.Context(), mood)
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}
	return writeSongs(cmd.OutOrStdout(), format, songs)
}

type songRow struct {
	Name string      `yaml:"name"`
	URL  string      `yaml:"url"`
	Mood domain.Mood `yaml:"mood"`
}

func writeSongs(w io.Writer, format string, songs []domain.Song) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(songs)
	case "yaml":
		rows := make([]songRow, len(songs))
		for i, s := range songs {
			rows[i] = songRow{Name: s.Name, URL: s.URL, Mood: s.Mood}
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	case "table":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tURL")
		for _, s := range songs {
			fmt.Fprintf(tw, "%s\t%s\n", s.Name, s.URL)
		}
		return tw.Flush()
	}
	return fmt.Errorf("unknown format %q", format)
}
