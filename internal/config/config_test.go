package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://data.sec.gov/api/xbrl/companyfacts", cfg.Edgar.BaseURL)
	assert.Equal(t, "https://www.sec.gov/files/company_tickers.json", cfg.Edgar.TickerMapURL)
	assert.Equal(t, []string{"AAPL"}, cfg.Edgar.Tickers)
	assert.Equal(t, "0000320193", cfg.Edgar.CIKMap["AAPL"])
	assert.Equal(t, 250*time.Millisecond, cfg.Edgar.RequestPause())
	assert.Equal(t, 30*time.Second, cfg.Edgar.Timeout())
	assert.Equal(t, "data/fundamentals.csv", cfg.Local.TablePath)
	assert.Equal(t, "data", cfg.Output.Dir)
	assert.Equal(t, 10, cfg.Series.LimitYears)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "fundamentals.db", cfg.Store.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
edgar:
  user_agent: "Example Corp research@example.com"
  tickers: [AAPL, MSFT]
  cik_map:
    MSFT: "0000789019"
  request_pause_ms: 500
series:
  limit_years: 5
store:
  driver: postgres
  database_url: postgres://localhost/fundamentals
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Example Corp research@example.com", cfg.Edgar.UserAgent)
	assert.Equal(t, []string{"AAPL", "MSFT"}, cfg.Edgar.Tickers)
	assert.Equal(t, "0000789019", cfg.Edgar.CIKMap["MSFT"])
	assert.Equal(t, 500*time.Millisecond, cfg.Edgar.RequestPause())
	assert.Equal(t, 5, cfg.Series.LimitYears)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/fundamentals", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	chdirTemp(t)

	t.Setenv("FUNDAMENTALS_OUTPUT_DIR", "/tmp/docs")
	t.Setenv("FUNDAMENTALS_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/docs", cfg.Output.Dir)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NotNil(t, zap.L())

	err := InitLogger(LogConfig{Level: "nonsense", Format: "json"})
	require.Error(t, err)
}
