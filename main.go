package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/llehouerou/streamus/internal/app"
	"github.com/llehouerou/streamus/internal/config"
	"github.com/llehouerou/streamus/internal/errmsg"
	"github.com/llehouerou/streamus/internal/icons"
	"github.com/llehouerou/streamus/internal/mpris"
	"github.com/llehouerou/streamus/internal/notify"
	"github.com/llehouerou/streamus/internal/playback"
	"github.com/llehouerou/streamus/internal/player"
	"github.com/llehouerou/streamus/internal/playlist"
	"github.com/llehouerou/streamus/internal/search"
	"github.com/llehouerou/streamus/internal/state"
	"github.com/llehouerou/streamus/internal/stderr"
	"github.com/llehouerou/streamus/internal/widget"
	"github.com/llehouerou/streamus/internal/widget/mpvwidget"
)

var errNoYouTube = errors.New("youtube api key missing: set [youtube] api_key or " + config.EnvYouTubeAPIKey)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		stderr.WriteOriginal("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var iconStyle string
	root := &cobra.Command{
		Use:           "streamus",
		Short:         "Terminal player for a YouTube stream with radio mode",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			icons.Init(iconStyle)
			return run(cmd.Context(), cfg)
		},
	}
	root.Flags().StringVar(&iconStyle, "icons", icons.StyleNerd, "icon style: nerd, unicode or none")
	root.AddCommand(newRelatedCmd())
	return root
}

func run(ctx context.Context, cfg *config.Config) error {
	if !cfg.HasYouTubeConfig() {
		return errNoYouTube
	}

	log, closeLog, err := openLog(cfg.GetLogConfig())
	if err != nil {
		return err
	}
	defer closeLog()

	if err := stderr.Start(log); err != nil {
		log.Warn().Err(err).Msg("stderr capture unavailable")
	}
	defer stderr.Stop()

	stateMgr, err := state.Open(log)
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer stateMgr.Close()

	bridge := app.NewBridge()
	focus := app.NewFocus()

	pc := cfg.GetPlayerConfig()
	adapter := widget.NewAdapter(mpvwidget.New(log), bridge, widget.Options{
		MaxLoadAttempts:  pc.MaxLoadAttempts,
		LoadAttemptDelay: pc.LoadAttemptDelay,
		Logger:           log,
	})
	defer adapter.Close()

	ctrl := player.New(adapter, stateMgr, player.Options{
		Volume:     pc.Volume,
		MinVolume:  pc.MinVolume,
		MaxVolume:  pc.MaxVolume,
		MaxLoadAge: pc.MaxLoadAge,
		Quality:    player.ParseQuality(pc.Quality),
		Logger:     log,
	})

	var startup []app.StartupError
	report := func(op errmsg.Op, err error) {
		startup = append(startup, app.StartupError{Op: op, Err: err})
	}

	yt := newYouTube(cfg, log)
	nowPlaying, err := newNowPlaying(cfg.GetNotifyConfig(), log)
	if err != nil {
		report(errmsg.OpNotify, err)
	}
	defer nowPlaying.Dismiss()

	sc := cfg.GetStreamConfig()
	stream := playback.New(playback.Config{
		Dispatcher:       bridge,
		Queue:            playlist.NewQueue(),
		Player:           ctrl,
		Related:          newRelated(cfg, stateMgr.DB(), yt, log),
		Store:            stateMgr,
		QueueStore:       stateMgr,
		Notifier:         nowPlaying,
		Foreground:       focus.Foreground,
		HistorySize:      sc.HistorySize,
		RelatedTimeout:   sc.RelatedTimeout,
		RestartThreshold: pc.RestartThreshold,
		Logger:           log,
	})
	defer stream.Close()
	if err := stream.Load(); err != nil {
		log.Warn().Err(err).Msg("restore stream")
		report(errmsg.OpStreamLoad, err)
	}

	srch := search.New(search.Options{
		Dispatcher: bridge,
		Searcher:   yt,
		Lookup:     yt,
		Timeout:    sc.RelatedTimeout,
		Logger:     log,
	})
	defer srch.Close()

	media, err := mpris.New(mpris.NewControls(bridge, stream, ctrl), log)
	switch {
	case errors.Is(err, errors.ErrUnsupported):
		log.Debug().Msg("media keys not supported on this platform")
	case err != nil:
		log.Warn().Err(err).Msg("media keys unavailable")
		report(errmsg.OpMPRIS, err)
	default:
		defer media.Close()
	}

	adapter.Preload()

	m := app.New(app.Deps{
		Stream: stream,
		Player: ctrl,
		Search: srch,
		Widget: adapter,
		Focus:  focus,

		StartupErrors: startup,
		Now:           time.Now,
		Logger:        log,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))
	bridge.Start(ctx, p.Send)

	_, err = p.Run()
	cancel()
	<-bridge.Done()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	log.Info().Msg("exiting")
	return nil
}

// newNowPlaying always returns a usable NowPlaying. When notifications are
// enabled but unavailable it falls back to a no-op notifier and returns the
// reason as well.
func newNowPlaying(cfg config.NotifyConfig, log zerolog.Logger) (*notify.NowPlaying, error) {
	if !*cfg.Enabled {
		return notify.NewNowPlaying(notify.Nop{}, cfg.Timeout, log), nil
	}
	n, err := notify.New()
	if err != nil {
		log.Warn().Err(err).Msg("notifications unavailable")
		return notify.NewNowPlaying(notify.Nop{}, cfg.Timeout, log), err
	}
	return notify.NewNowPlaying(n, cfg.Timeout, log), nil
}
