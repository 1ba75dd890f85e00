package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "streamus"

// Environment variables that override secrets from the config file.
// They may also be set in a .env file next to config.toml.
const (
	EnvYouTubeAPIKey   = "STREAMUS_YOUTUBE_API_KEY"
	EnvLastfmAPIKey    = "STREAMUS_LASTFM_API_KEY"
	EnvLastfmAPISecret = "STREAMUS_LASTFM_API_SECRET"
)

type Config struct {
	Player  PlayerConfig  `koanf:"player"`
	Stream  StreamConfig  `koanf:"stream"`
	YouTube YouTubeConfig `koanf:"youtube"`

	// Last.fm similar tracks (used for radio when configured)
	Lastfm LastfmConfig `koanf:"lastfm"`

	Radio  RadioConfig  `koanf:"radio"`
	Notify NotifyConfig `koanf:"notify"`
	Log    LogConfig    `koanf:"log"`
}

// PlayerConfig holds playback defaults and widget load policy.
type PlayerConfig struct {
	Volume           *int          `koanf:"volume"`             // initial volume before any saved state (default: 50)
	MinVolume        int           `koanf:"min_volume"`         // default: 0
	MaxVolume        int           `koanf:"max_volume"`         // default: 100
	Quality          string        `koanf:"quality"`            // "highest", "auto", "lowest" (default: "auto")
	MaxLoadAge       time.Duration `koanf:"max_load_age"`       // reload a track loaded longer ago (default: 4h)
	MaxLoadAttempts  int           `koanf:"max_load_attempts"`  // default: 10
	LoadAttemptDelay time.Duration `koanf:"load_attempt_delay"` // default: 6s
	RestartThreshold time.Duration `koanf:"restart_threshold"`  // "previous" restarts the track past this (default: 3s)
}

// StreamConfig holds sequencer settings.
type StreamConfig struct {
	HistorySize    int           `koanf:"history_size"`    // default: 200
	RelatedTimeout time.Duration `koanf:"related_timeout"` // default: 10s
}

// YouTubeConfig holds YouTube Data API settings.
type YouTubeConfig struct {
	APIKey string `koanf:"api_key"`
	APIURL string `koanf:"api_url"` // default: https://www.googleapis.com/youtube/v3
}

// LastfmConfig holds Last.fm API credentials.
type LastfmConfig struct {
	APIKey    string `koanf:"api_key"`
	APISecret string `koanf:"api_secret"`
}

// RadioConfig holds related-track discovery settings.
type RadioConfig struct {
	CacheTTLDays   int     `koanf:"cache_ttl_days"`  // Cache TTL in days (default: 7)
	MatchThreshold float64 `koanf:"match_threshold"` // Fuzzy title match threshold (0.0-1.0, default: 0.6)
	RelatedLimit   int     `koanf:"related_limit"`   // Related tracks fetched per item (default: 25)
}

// NotifyConfig holds now-playing notification settings.
type NotifyConfig struct {
	Enabled *bool         `koanf:"enabled"` // default: true
	Timeout time.Duration `koanf:"timeout"` // default: 4s
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"` // zerolog level name (default: "info")
	File  string `koanf:"file"`  // default: $XDG_STATE_HOME/streamus/streamus.log
}

// Load reads the config files in priority order and applies .env overrides.
func Load() (*Config, error) {
	for _, p := range getEnvPaths() {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given TOML files (last wins); missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}
	cfg.YouTube.APIURL = strings.TrimSuffix(cfg.YouTube.APIURL, "/")
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvYouTubeAPIKey); v != "" {
		c.YouTube.APIKey = v
	}
	if v := os.Getenv(EnvLastfmAPIKey); v != "" {
		c.Lastfm.APIKey = v
	}
	if v := os.Getenv(EnvLastfmAPISecret); v != "" {
		c.Lastfm.APISecret = v
	}
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/streamus/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

// getEnvPaths lists .env files; godotenv never overrides variables that are
// already set, so the first file wins.
func getEnvPaths() []string {
	paths := []string{".env"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, ".env"))
	}
	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasYouTubeConfig returns true if the YouTube Data API is configured.
func (c *Config) HasYouTubeConfig() bool {
	return c.YouTube.APIKey != ""
}

// HasLastfmConfig returns true if Last.fm similar-track discovery is configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != ""
}

// GetPlayerConfig returns the player configuration with defaults applied.
func (c *Config) GetPlayerConfig() PlayerConfig {
	cfg := c.Player

	if cfg.MaxVolume <= 0 || cfg.MaxVolume > 100 {
		cfg.MaxVolume = 100
	}
	if cfg.MinVolume < 0 || cfg.MinVolume >= cfg.MaxVolume {
		cfg.MinVolume = 0
	}
	if cfg.Volume == nil {
		v := 50
		cfg.Volume = &v
	}
	switch strings.ToLower(cfg.Quality) {
	case "highest", "auto", "lowest":
		cfg.Quality = strings.ToLower(cfg.Quality)
	default:
		cfg.Quality = "auto"
	}
	if cfg.MaxLoadAge <= 0 {
		cfg.MaxLoadAge = 4 * time.Hour
	}
	if cfg.MaxLoadAttempts <= 0 {
		cfg.MaxLoadAttempts = 10
	}
	if cfg.LoadAttemptDelay <= 0 {
		cfg.LoadAttemptDelay = 6 * time.Second
	}
	if cfg.RestartThreshold <= 0 {
		cfg.RestartThreshold = 3 * time.Second
	}

	return cfg
}

// GetStreamConfig returns the stream configuration with defaults applied.
func (c *Config) GetStreamConfig() StreamConfig {
	cfg := c.Stream
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = 200
	}
	if cfg.RelatedTimeout <= 0 {
		cfg.RelatedTimeout = 10 * time.Second
	}
	return cfg
}

// GetYouTubeConfig returns the YouTube configuration with defaults applied.
func (c *Config) GetYouTubeConfig() YouTubeConfig {
	cfg := c.YouTube
	if cfg.APIURL == "" {
		cfg.APIURL = "https://www.googleapis.com/youtube/v3"
	}
	return cfg
}

// GetRadioConfig returns the radio configuration with defaults applied.
func (c *Config) GetRadioConfig() RadioConfig {
	cfg := c.Radio

	// Apply defaults
	if cfg.CacheTTLDays <= 0 {
		cfg.CacheTTLDays = 7
	}
	if cfg.MatchThreshold <= 0 || cfg.MatchThreshold > 1 {
		cfg.MatchThreshold = 0.6
	}
	if cfg.RelatedLimit <= 0 || cfg.RelatedLimit > 50 {
		cfg.RelatedLimit = 25
	}

	return cfg
}

// GetNotifyConfig returns the notification configuration with defaults applied.
func (c *Config) GetNotifyConfig() NotifyConfig {
	cfg := c.Notify
	if cfg.Enabled == nil {
		enabled := true
		cfg.Enabled = &enabled
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 4 * time.Second
	}
	return cfg
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}
