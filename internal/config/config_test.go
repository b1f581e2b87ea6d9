package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), "config.yaml", "app:\n  env: test\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.App.Env)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, ":9880", cfg.App.HTTPAddr)
	assert.Equal(t, "data/cerebro.db", cfg.Database.Path)
	assert.Equal(t, "data/botlog.db", cfg.Database.BotLogPath)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 2.0, cfg.Trading.FillDelaySeconds)
	assert.Equal(t, 50000.0, cfg.Trading.FallbackPrice)
	assert.Equal(t, "1m", cfg.Signals.Interval)
	assert.Equal(t, "new_signals", cfg.Signals.Topic)
	assert.Equal(t, []string{"BTC/USDT", "ETH/USDT", "BNB/USDT", "ADA/USDT"}, cfg.Signals.Symbols)
	assert.Equal(t, []string{"binance", "coinbase"}, cfg.Signals.Exchanges)
	assert.Equal(t, 100, cfg.Signals.SeedCount)
	assert.Len(t, cfg.Signals.SeedSymbols, 5)
	assert.Len(t, cfg.Signals.SeedExchanges, 3)
	assert.Equal(t, "CerebroBot", cfg.Brand.Name)
}

func TestLoad_ExplicitZeroSurvivesDefaults(t *testing.T) {
	// 显式写 0 不应被默认值覆盖
	path := writeConfigFile(t, t.TempDir(), "config.yaml", `
trading:
  fill_delay_seconds: 0
signals:
  seed_count: 0
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Trading.FillDelaySeconds)
	assert.Equal(t, 0, cfg.Signals.SeedCount)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), "config.yaml", `
app:
  http_addr: ":8080"
  log_level: debug
trading:
  fill_delay_seconds: 0.5
  fallback_price: 42000
signals:
  interval: 30s
  symbols:
    - SOL/USDT
  exchanges:
    - kraken
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.App.HTTPAddr)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, 0.5, cfg.Trading.FillDelaySeconds)
	assert.Equal(t, 42000.0, cfg.Trading.FallbackPrice)
	assert.Equal(t, "30s", cfg.Signals.Interval)
	assert.Equal(t, []string{"SOL/USDT"}, cfg.Signals.Symbols)
	assert.Equal(t, []string{"kraken"}, cfg.Signals.Exchanges)
}

func TestLoad_IncludeMerge(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "base.yaml", `
app:
  env: prod
  log_level: warn
trading:
  fallback_price: 42000
`)
	main := writeConfigFile(t, dir, "config.yaml", `
include:
  - base.yaml
app:
  log_level: debug
`)

	cfg, err := Load(main)
	require.NoError(t, err)
	// 主文件覆盖 include 文件，未覆盖的字段保留
	assert.Equal(t, "prod", cfg.App.Env)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, 42000.0, cfg.Trading.FallbackPrice)
}

func TestLoad_IncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "a.yaml", "include:\n  - b.yaml\n")
	writeConfigFile(t, dir, "b.yaml", "include:\n  - a.yaml\n")

	_, err := Load(filepath.Join(dir, "a.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "include cycle")
}

func TestLoad_RejectsInvalidInterval(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), "config.yaml", "signals:\n  interval: fortnight\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signals.interval")
}

func TestLoad_RejectsUnnamedLiveExchange(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), "config.yaml", `
market:
  live:
    - rest_base_url: https://api.binance.com
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing name")
}

func TestLoad_LiveExchangeDefaults(t *testing.T) {
	path := writeConfigFile(t, t.TempDir(), "config.yaml", `
market:
  live:
    - name: binance
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Market.Live, 1)
	assert.Equal(t, "https://api.binance.com", cfg.Market.Live[0].RESTBaseURL)
	assert.Equal(t, 10, cfg.Market.Live[0].TimeoutSeconds)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseIntervalDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"30s", 30 * time.Second, true},
		{"1m", time.Minute, true},
		{"5m", 5 * time.Minute, true},
		{"1h", time.Hour, true},
		{"4h", 4 * time.Hour, true},
		{"1d", 24 * time.Hour, true},
		{"", 0, false},
		{"1w", 0, false},
		{"m", 0, false},
		{"-1m", 0, false},
		{"0m", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseIntervalDuration(tc.in)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}
