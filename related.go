package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/llehouerou/streamus/internal/config"
	"github.com/llehouerou/streamus/internal/playlist"
	"github.com/llehouerou/streamus/internal/state"
	"github.com/llehouerou/streamus/internal/ui/render"
)

func newRelatedCmd() *cobra.Command {
	var (
		noCache bool
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "related <video-id>",
		Short: "Print the tracks radio mode would pick after a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if !cfg.HasYouTubeConfig() {
				return errNoYouTube
			}

			log := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
				Level(zerolog.WarnLevel).With().Timestamp().Logger()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			yt := newYouTube(cfg, log)
			seeds, err := yt.Lookup(ctx, args[0])
			if err != nil {
				return fmt.Errorf("look up %s: %w", args[0], err)
			}
			if len(seeds) == 0 {
				return fmt.Errorf("video %s not found", args[0])
			}

			var db *sql.DB
			if !noCache {
				mgr, err := state.Open(log)
				if err != nil {
					return fmt.Errorf("open state: %w", err)
				}
				defer mgr.Close()
				db = mgr.DB()
			}

			tracks, err := newRelated(cfg, db, yt, log).Related(ctx, seeds[0])
			if err != nil {
				return fmt.Errorf("related to %s: %w", args[0], err)
			}
			printTracks(cmd.OutOrStdout(), seeds[0], tracks)
			return nil
		},
	}
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the related-tracks cache")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "give up after this long")
	return cmd
}

func printTracks(w io.Writer, seed playlist.Track, tracks []playlist.Track) {
	fmt.Fprintf(w, "Related to %s (%s)\n", seed.DisplayName(), seed.ID)
	if len(tracks) == 0 {
		fmt.Fprintln(w, "No related tracks")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "ID", "Title", "Author", "Length"})
	for i, tr := range tracks {
		t.AppendRow(table.Row{i + 1, tr.ID, tr.Title, tr.Author, render.FormatDuration(tr.Duration)})
	}
	t.Render()
}
