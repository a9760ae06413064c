package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Defaults.
const (
	DefaultSocketPath      = "/tmp/sound.sock"
	DefaultMaxRequestBytes = 1024
	DefaultReadTimeout     = 5 * time.Second
	DefaultDialTimeout     = 2 * time.Second

	DefaultSampleRate      = 44100
	DefaultBuffer          = 100 * time.Millisecond
	DefaultResampleQuality = 4

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	DefaultNotifyTimeout = 5 * time.Second
)

type Config struct {
	SocketPath      string `koanf:"socket_path"`
	MaxRequestBytes int    `koanf:"max_request_bytes"` // upper bound for one request payload
	ReadTimeout     string `koanf:"read_timeout"`      // per-connection deadline, e.g. "5s"
	DialTimeout     string `koanf:"dial_timeout"`      // client connect timeout

	Audio  AudioConfig  `koanf:"audio"`
	Log    LogConfig    `koanf:"log"`
	Notify NotifyConfig `koanf:"notify"`
	MPRIS  MPRISConfig  `koanf:"mpris"`
}

// AudioConfig holds the output device settings.
type AudioConfig struct {
	SampleRate      int    `koanf:"sample_rate"`      // Hz, streams at other rates are resampled
	Buffer          string `koanf:"buffer"`           // speaker buffer length, e.g. "100ms"
	ResampleQuality int    `koanf:"resample_quality"` // 1-6
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `koanf:"level"`  // "debug", "info", "warn", "error"
	Format string `koanf:"format"` // "text" or "json"
}

// NotifyConfig holds desktop notification settings (Linux, D-Bus).
type NotifyConfig struct {
	Enabled bool   `koanf:"enabled"` // announce each started track (default: false)
	Timeout string `koanf:"timeout"` // how long a notification stays, e.g. "5s"
}

// MPRISConfig controls the media-key interface (Linux, D-Bus).
type MPRISConfig struct {
	Enabled bool `koanf:"enabled"` // default: false
}

// Load reads config files in order of priority (last wins). A non-empty
// explicitPath is loaded last and must exist.
func Load(explicitPath string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	if explicitPath != "" {
		explicitPath = expandPath(explicitPath)
		if err := k.Load(file.Provider(explicitPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", explicitPath, err)
		}
	}

	cfg := &Config{
		SocketPath: DefaultSocketPath,
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.SocketPath = expandPath(strings.TrimSpace(cfg.SocketPath))
	if cfg.SocketPath == "" {
		cfg.SocketPath = DefaultSocketPath
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	return cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{SocketPath: DefaultSocketPath}
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/sound/config.toml
		filepath.Join(xdg.ConfigHome, "sound", "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetMaxRequestBytes returns the request size limit with defaults applied.
func (c *Config) GetMaxRequestBytes() int {
	if c.MaxRequestBytes <= 0 {
		return DefaultMaxRequestBytes
	}
	return c.MaxRequestBytes
}

// GetReadTimeout returns the per-connection deadline with defaults applied.
func (c *Config) GetReadTimeout() time.Duration {
	return parseDuration(c.ReadTimeout, DefaultReadTimeout)
}

// GetDialTimeout returns the client connect timeout with defaults applied.
func (c *Config) GetDialTimeout() time.Duration {
	return parseDuration(c.DialTimeout, DefaultDialTimeout)
}

// GetAudioConfig returns the audio configuration with defaults applied.
func (c *Config) GetAudioConfig() AudioConfig {
	cfg := c.Audio

	if cfg.SampleRate < 8000 || cfg.SampleRate > 192000 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.ResampleQuality < 1 || cfg.ResampleQuality > 6 {
		cfg.ResampleQuality = DefaultResampleQuality
	}
	cfg.Buffer = parseDuration(cfg.Buffer, DefaultBuffer).String()

	return cfg
}

// BufferDuration returns the parsed speaker buffer length.
func (a AudioConfig) BufferDuration() time.Duration {
	return parseDuration(a.Buffer, DefaultBuffer)
}

// GetLogConfig returns the logger configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log

	switch cfg.Level {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		cfg.Level = DefaultLogLevel
	}
	if cfg.Format != "json" {
		cfg.Format = DefaultLogFormat
	}

	return cfg
}

// GetNotifyTimeout returns the notification timeout with defaults applied.
func (c *Config) GetNotifyTimeout() time.Duration {
	return parseDuration(c.Notify.Timeout, DefaultNotifyTimeout)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
