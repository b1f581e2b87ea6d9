package config

import (
	"fmt"
	"strings"
)

// 默认值常量
const (
	defaultAppEnv          = "dev"
	defaultAppLogLevel     = "info"
	defaultAppHTTPAddr     = ":9880"
	defaultDatabasePath    = "data/cerebro.db"
	defaultBotLogPath      = "data/botlog.db"
	defaultRedisURL        = "redis://localhost:6379"
	defaultAuthSecret      = "change-me-in-production"
	defaultAuthTTLMinutes  = 30
	defaultFillDelaySec    = 2.0
	defaultFallbackPrice   = 50000.0
	defaultSignalInterval  = "1m"
	defaultSignalTopic     = "new_signals"
	defaultSeedCount       = 100
	defaultMarketREST      = "https://api.binance.com"
	defaultMarketTimeout   = 10
	defaultBrandName       = "CerebroBot"
	defaultBrandPrimary    = "#00FFD1"
	defaultBrandSecondary  = "#0A0A0A"
	defaultBrandAccent     = "#F2F2F2"
)

var (
	defaultSignalSymbols   = []string{"BTC/USDT", "ETH/USDT", "BNB/USDT", "ADA/USDT"}
	defaultSignalExchanges = []string{"binance", "coinbase"}
	defaultSeedSymbols     = []string{"BTC/USDT", "ETH/USDT", "BNB/USDT", "ADA/USDT", "SOL/USDT"}
	defaultSeedExchanges   = []string{"binance", "coinbase", "kraken"}
)

// applyDefaults 为所有子配置应用默认值。
func (c *Config) applyDefaults(keys keySet) {
	c.App.applyDefaults(keys)
	c.Database.applyDefaults(keys)
	c.Redis.applyDefaults(keys)
	c.Auth.applyDefaults(keys)
	c.Trading.applyDefaults(keys)
	c.Signals.applyDefaults(keys)
	c.Market.applyDefaults(keys)
	c.Brand.applyDefaults(keys)
}

func (a *AppConfig) applyDefaults(keys keySet) {
	if a.Env == "" {
		a.Env = defaultAppEnv
	}
	if a.LogLevel == "" {
		a.LogLevel = defaultAppLogLevel
	}
	if a.HTTPAddr == "" {
		a.HTTPAddr = defaultAppHTTPAddr
	}
}

func (d *DatabaseConfig) applyDefaults(keys keySet) {
	if d.Path == "" {
		d.Path = defaultDatabasePath
	}
	if d.BotLogPath == "" {
		d.BotLogPath = defaultBotLogPath
	}
}

func (r *RedisConfig) applyDefaults(keys keySet) {
	if r.URL == "" {
		r.URL = defaultRedisURL
	}
}

func (a *AuthConfig) applyDefaults(keys keySet) {
	if a.SecretKey == "" {
		a.SecretKey = defaultAuthSecret
	}
	if a.TokenTTLMinutes <= 0 {
		a.TokenTTLMinutes = defaultAuthTTLMinutes
	}
}

func (t *TradingConfig) applyDefaults(keys keySet) {
	if !keys.has("trading.fill_delay_seconds") && t.FillDelaySeconds == 0 {
		t.FillDelaySeconds = defaultFillDelaySec
	}
	if t.FillDelaySeconds < 0 {
		t.FillDelaySeconds = 0
	}
	if t.FallbackPrice <= 0 {
		t.FallbackPrice = defaultFallbackPrice
	}
}

func (s *SignalsConfig) applyDefaults(keys keySet) {
	if s.Interval == "" {
		s.Interval = defaultSignalInterval
	}
	if s.Topic == "" {
		s.Topic = defaultSignalTopic
	}
	if len(s.Symbols) == 0 {
		s.Symbols = append([]string(nil), defaultSignalSymbols...)
	}
	if len(s.Exchanges) == 0 {
		s.Exchanges = append([]string(nil), defaultSignalExchanges...)
	}
	if !keys.has("signals.seed_count") && s.SeedCount == 0 {
		s.SeedCount = defaultSeedCount
	}
	if s.SeedCount < 0 {
		s.SeedCount = 0
	}
	if len(s.SeedSymbols) == 0 {
		s.SeedSymbols = append([]string(nil), defaultSeedSymbols...)
	}
	if len(s.SeedExchanges) == 0 {
		s.SeedExchanges = append([]string(nil), defaultSeedExchanges...)
	}
}

func (m *MarketConfig) applyDefaults(keys keySet) {
	for i := range m.Live {
		if m.Live[i].RESTBaseURL == "" {
			m.Live[i].RESTBaseURL = defaultMarketREST
		}
		if m.Live[i].TimeoutSeconds <= 0 {
			m.Live[i].TimeoutSeconds = defaultMarketTimeout
		}
	}
}

func (b *BrandConfig) applyDefaults(keys keySet) {
	if b.Name == "" {
		b.Name = defaultBrandName
	}
	if b.PrimaryColor == "" {
		b.PrimaryColor = defaultBrandPrimary
	}
	if b.SecondaryColor == "" {
		b.SecondaryColor = defaultBrandSecondary
	}
	if b.AccentColor == "" {
		b.AccentColor = defaultBrandAccent
	}
}

// validate 做启动期的硬校验，失败直接拒绝启动。
func validate(c *Config) error {
	if c == nil {
		return fmt.Errorf("nil config")
	}
	if _, ok := ParseIntervalDuration(c.Signals.Interval); !ok {
		return fmt.Errorf("invalid signals.interval: %q", c.Signals.Interval)
	}
	for _, live := range c.Market.Live {
		if strings.TrimSpace(live.Name) == "" {
			return fmt.Errorf("market.live entry missing name")
		}
	}
	return nil
}
