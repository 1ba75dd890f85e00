package main

import (
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/llehouerou/streamus/internal/config"
	"github.com/llehouerou/streamus/internal/lastfm"
	"github.com/llehouerou/streamus/internal/radio"
)

func newYouTube(cfg *config.Config, log zerolog.Logger) *radio.YouTube {
	yc := cfg.GetYouTubeConfig()
	return radio.NewYouTube(radio.YouTubeOptions{
		APIKey:       yc.APIKey,
		BaseURL:      yc.APIURL,
		RelatedLimit: cfg.GetRadioConfig().RelatedLimit,
		Logger:       log,
	})
}

// newRelated builds the radio provider: Last.fm similar tracks when
// configured, then YouTube related videos, behind the SQLite cache.
// A nil db disables the cache.
func newRelated(cfg *config.Config, db *sql.DB, yt *radio.YouTube, log zerolog.Logger) radio.Provider {
	rc := cfg.GetRadioConfig()

	var chain radio.Chain
	if cfg.HasLastfmConfig() {
		client := lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
		chain = append(chain, radio.NewLastfm(client, yt, radio.LastfmOptions{
			MatchThreshold: rc.MatchThreshold,
			Logger:         log,
		}))
	}
	chain = append(chain, yt)

	if db == nil {
		return chain
	}
	return radio.NewCached(chain, radio.NewCache(db, rc.CacheTTLDays), log)
}
