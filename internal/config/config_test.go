//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the XDG config home and the working directory at fresh
// temp dirs so the user's own config never leaks into a test.
func isolate(t *testing.T) (xdgHome, wd string) {
	t.Helper()
	xdgHome = t.TempDir()
	t.Cleanup(xdg.Reload) // runs after Setenv restores the variable
	t.Setenv("XDG_CONFIG_HOME", xdgHome)
	xdg.Reload()

	wd = t.TempDir()
	t.Chdir(wd)
	return xdgHome, wd
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/run/sound.sock",
			expected: filepath.Join(home, "run", "sound.sock"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/tmp/sound.sock",
			expected: "/tmp/sound.sock",
		},
		{
			name:     "relative path unchanged",
			input:    "run/sound.sock",
			expected: "run/sound.sock",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	xdgHome, _ := isolate(t)

	paths := getConfigPaths()

	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(xdgHome, "sound", "config.toml"), paths[0])
	assert.Equal(t, "config.toml", paths[1])
}

func TestLoad_NoConfigFiles(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultSocketPath, cfg.SocketPath)
	assert.Equal(t, DefaultMaxRequestBytes, cfg.GetMaxRequestBytes())
	assert.Equal(t, DefaultReadTimeout, cfg.GetReadTimeout())
	assert.Equal(t, DefaultDialTimeout, cfg.GetDialTimeout())

	audio := cfg.GetAudioConfig()
	assert.Equal(t, DefaultSampleRate, audio.SampleRate)
	assert.Equal(t, DefaultResampleQuality, audio.ResampleQuality)
	assert.Equal(t, DefaultBuffer, audio.BufferDuration())

	logCfg := cfg.GetLogConfig()
	assert.Equal(t, "info", logCfg.Level)
	assert.Equal(t, "text", logCfg.Format)

	assert.False(t, cfg.Notify.Enabled)
	assert.Equal(t, DefaultNotifyTimeout, cfg.GetNotifyTimeout())
}

func TestLoad_BasicConfig(t *testing.T) {
	isolate(t)

	configContent := `
socket_path = "/run/user/1000/sound.sock"
max_request_bytes = 4096
read_timeout = "1s"
dial_timeout = "250ms"

[audio]
sample_rate = 48000
buffer = "50ms"
resample_quality = 6

[log]
level = "DEBUG"
format = "json"

[notify]
enabled = true
timeout = "3s"

[mpris]
enabled = true
`
	require.NoError(t, os.WriteFile("config.toml", []byte(configContent), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/run/user/1000/sound.sock", cfg.SocketPath)
	assert.Equal(t, 4096, cfg.GetMaxRequestBytes())
	assert.Equal(t, time.Second, cfg.GetReadTimeout())
	assert.Equal(t, 250*time.Millisecond, cfg.GetDialTimeout())

	audio := cfg.GetAudioConfig()
	assert.Equal(t, 48000, audio.SampleRate)
	assert.Equal(t, 6, audio.ResampleQuality)
	assert.Equal(t, 50*time.Millisecond, audio.BufferDuration())

	logCfg := cfg.GetLogConfig()
	assert.Equal(t, "debug", logCfg.Level)
	assert.Equal(t, "json", logCfg.Format)

	assert.True(t, cfg.Notify.Enabled)
	assert.Equal(t, 3*time.Second, cfg.GetNotifyTimeout())
	assert.True(t, cfg.MPRIS.Enabled)
}

func TestLoad_PriorityOrder(t *testing.T) {
	xdgHome, wd := isolate(t)

	require.NoError(t, os.MkdirAll(filepath.Join(xdgHome, "sound"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(xdgHome, "sound", "config.toml"),
		[]byte("socket_path = \"/from/xdg.sock\"\nmax_request_bytes = 2048\n"),
		0o600,
	))
	require.NoError(t, os.WriteFile("config.toml", []byte(`socket_path = "/from/pwd.sock"`), 0o600))
	explicit := filepath.Join(wd, "explicit.toml")
	require.NoError(t, os.WriteFile(explicit, []byte(`read_timeout = "9s"`), 0o600))

	cfg, err := Load(explicit)
	require.NoError(t, err)

	assert.Equal(t, "/from/pwd.sock", cfg.SocketPath, "pwd config overrides xdg")
	assert.Equal(t, 2048, cfg.GetMaxRequestBytes(), "keys not overridden survive")
	assert.Equal(t, 9*time.Second, cfg.GetReadTimeout(), "explicit file is loaded last")
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	isolate(t)

	_, err := Load("does-not-exist.toml")
	assert.Error(t, err)
}

func TestLoad_InvalidToml(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("config.toml", []byte("invalid = [[["), 0o600))

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_SocketPathExpansion(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}
	isolate(t)
	require.NoError(t, os.WriteFile("config.toml", []byte(`socket_path = "~/sound.sock"`), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "sound.sock"), cfg.SocketPath)
}

func TestLoad_BlankSocketPathFallsBack(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("config.toml", []byte(`socket_path = "  "`), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultSocketPath, cfg.SocketPath)
}

func TestGetters_InvalidValues(t *testing.T) {
	cfg := &Config{
		MaxRequestBytes: -1,
		ReadTimeout:     "soon",
		DialTimeout:     "-3s",
		Audio: AudioConfig{
			SampleRate:      12,
			Buffer:          "0",
			ResampleQuality: 9,
		},
		Log: LogConfig{Level: "loud", Format: "xml"},
	}

	assert.Equal(t, DefaultMaxRequestBytes, cfg.GetMaxRequestBytes())
	assert.Equal(t, DefaultReadTimeout, cfg.GetReadTimeout())
	assert.Equal(t, DefaultDialTimeout, cfg.GetDialTimeout())

	audio := cfg.GetAudioConfig()
	assert.Equal(t, DefaultSampleRate, audio.SampleRate)
	assert.Equal(t, DefaultResampleQuality, audio.ResampleQuality)
	assert.Equal(t, DefaultBuffer, audio.BufferDuration())

	logCfg := cfg.GetLogConfig()
	assert.Equal(t, DefaultLogLevel, logCfg.Level)
	assert.Equal(t, DefaultLogFormat, logCfg.Format)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultSocketPath, cfg.SocketPath)
	assert.Equal(t, DefaultReadTimeout, cfg.GetReadTimeout())
}
