package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"k9console/internal/testutils"
)

// isolate keeps user config files out of the search path.
func isolate(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(dir)
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t, t.TempDir())

	cfg, err := Load(New(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.MaxFPS)
	assert.False(t, cfg.UseVSync)
	assert.Equal(t, 1600, cfg.Width)
	assert.Equal(t, 900, cfg.Height)
	assert.False(t, cfg.Fullscreen)
	assert.Equal(t, "k9> ", cfg.Console.Prompt)
	assert.Equal(t, 100, cfg.Console.HistorySize)
	assert.Equal(t, "default", cfg.UI.Theme)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Precedence(t *testing.T) {
	files := testutils.NewFileHelpers()
	dir := files.CreateTempDir(t, map[string]string{
		"k9console.yaml": "max_fps: 60\nwidth: 800\nconsole:\n  prompt: \"file> \"\n",
		".env":           "K9_MAX_FPS=30\nK9_CONSOLE_HISTORY_SIZE=7\nUNRELATED=1\n",
	})
	isolate(t, dir)
	t.Setenv("K9_CONSOLE_HISTORY_SIZE", "9")

	v := New()
	cfg, err := Load(v, Options{})
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.MaxFPS, ".env beats the config file")
	assert.Equal(t, 800, cfg.Width, "config file beats defaults")
	assert.Equal(t, "file> ", cfg.Console.Prompt)
	assert.Equal(t, 9, cfg.Console.HistorySize, "environment beats .env")
	assert.Equal(t, 900, cfg.Height)
}

func TestLoad_SkipDotEnv(t *testing.T) {
	files := testutils.NewFileHelpers()
	dir := files.CreateTempDir(t, map[string]string{".env": "K9_MAX_FPS=30\n"})
	isolate(t, dir)

	cfg, err := Load(New(), Options{SkipDotEnv: true})
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.MaxFPS)
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	files := testutils.NewFileHelpers()
	path := files.CreateTempFile(t, "custom.yaml", "ui:\n  theme: plain\nfullscreen: true\n")
	t.Chdir(t.TempDir())

	cfg, err := Load(New(), Options{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "plain", cfg.UI.Theme)
	assert.True(t, cfg.Fullscreen)

	_, err = Load(New(), Options{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err, "an explicit config file must exist")
}

func TestLoad_InvalidValues(t *testing.T) {
	isolate(t, t.TempDir())
	t.Setenv("K9_MAX_FPS", "-1")
	t.Setenv("K9_LOG_LEVEL", "loud")

	_, err := Load(New(), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_fps")
	assert.Contains(t, err.Error(), "log.level")
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "K9_MAX_FPS", EnvName("max_fps"))
	assert.Equal(t, "K9_CONSOLE_PROMPT", EnvName("console.prompt"))
}

func TestWatch(t *testing.T) {
	isolate(t, t.TempDir())
	assert.False(t, Watch(New(), func(*Config) {}), "nothing to watch without a config file")

	path := testutils.NewFileHelpers().CreateTempFile(t, "k9console.yaml", "max_fps: 60\n")
	v := New()
	_, err := Load(v, Options{ConfigFile: path, SkipDotEnv: true})
	require.NoError(t, err)

	changes := make(chan *Config, 4)
	require.True(t, Watch(v, func(c *Config) {
		select {
		case changes <- c:
		default:
		}
	}))

	require.NoError(t, os.WriteFile(path, []byte("max_fps: 30\n"), 0644))

	select {
	case cfg := <-changes:
		assert.Equal(t, 30, cfg.MaxFPS)
	case <-time.After(5 * time.Second):
		t.Fatal("config change not observed")
	}
}
