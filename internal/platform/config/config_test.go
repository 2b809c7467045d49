package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Source.Timeout)
	assert.False(t, cfg.Redis.Enabled())

	start, err := cfg.Source.StartTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), start)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
server:
  addr: ":9000"
source:
  timeout: 3s
  start_date: "2022-06-01"
  symbols:
    MSFT: /data/msft.csv
redis:
  host: cache
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Source.Timeout)
	assert.Equal(t, map[string]string{"MSFT": "/data/msft.csv"}, cfg.Source.Symbols)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
	assert.Equal(t, "debug", cfg.Logging.Level)
	// ファイルに無いキーはデフォルトのまま
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, int64(32<<20), cfg.Source.MaxBytes)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("SOURCE_TIMEOUT", "1500ms")
	t.Setenv("DATA_START_DATE", "2023-01-02")
	t.Setenv("SYMBOL_AAPL_URL", "file:///tmp/aapl.csv")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("PLOT_RATE_LIMIT_PER_MIN", "5")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(writeFile(t, "server:\n  addr: \":9000\"\n"))
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, 1500*time.Millisecond, cfg.Source.Timeout)
	assert.Equal(t, "2023-01-02", cfg.Source.StartDate)
	assert.Equal(t, "file:///tmp/aapl.csv", cfg.Source.Symbols["AAPL"])
	assert.Equal(t, "localhost:6380", cfg.Redis.Addr())
	assert.Equal(t, 5, cfg.RateLimit.PlotPerMinute)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
	}{
		{name: "bad timeout env", env: map[string]string{"SOURCE_TIMEOUT": "soon"}},
		{name: "bad int env", env: map[string]string{"PLOT_RATE_LIMIT_PER_MIN": "many"}},
		{name: "bad start date", env: map[string]string{"DATA_START_DATE": "01/02/2021"}},
		{name: "non-positive timeout", file: "source:\n  timeout: 0s\n"},
		{name: "invalid yaml", file: "server: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeFile(t, tt.file)
			}
			cfg, err := Load(path)
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSymbolEnv(t *testing.T) {
	t.Parallel()

	got := symbolEnv([]string{
		"SYMBOL_MSFT_URL=https://example.com/msft.csv",
		"SYMBOL_V_URL=/data/v.csv",
		"SYMBOL__URL=/ignored",
		"SYMBOL_URL=/ignored",
		"SYMBOL_AAPL_URL=",
		"PATH=/usr/bin",
	})

	assert.Equal(t, map[string]string{
		"MSFT": "https://example.com/msft.csv",
		"V":    "/data/v.csv",
	}, got)
}
