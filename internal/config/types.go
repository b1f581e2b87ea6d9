package config

// Config 是 cerebro 的主配置载体。
type Config struct {
	App      AppConfig      `toml:"app"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Auth     AuthConfig     `toml:"auth"`
	Trading  TradingConfig  `toml:"trading"`
	Signals  SignalsConfig  `toml:"signals"`
	Market   MarketConfig   `toml:"market"`
	Brand    BrandConfig    `toml:"brand"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	HTTPAddr string `toml:"http_addr"`
	LogPath  string `toml:"log_path"`
}

type DatabaseConfig struct {
	Path       string `toml:"path"`
	BotLogPath string `toml:"bot_log_path"`
}

type RedisConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
}

type AuthConfig struct {
	SecretKey       string `toml:"secret_key"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`
}

// TradingConfig 控制模拟撮合的行为（成交延迟与兜底参考价）。
type TradingConfig struct {
	FillDelaySeconds float64 `toml:"fill_delay_seconds"`
	FallbackPrice    float64 `toml:"fallback_price"`
}

type SignalsConfig struct {
	Interval      string   `toml:"interval"` // "1m", "5m", "1h"
	Symbols       []string `toml:"symbols"`
	Exchanges     []string `toml:"exchanges"`
	Topic         string   `toml:"topic"`
	SeedCount     int      `toml:"seed_count"`
	SeedSymbols   []string `toml:"seed_symbols"`
	SeedExchanges []string `toml:"seed_exchanges"`
}

// MarketConfig 描述各交易所行情来源；未配置 live 的交易所走合成行情。
type MarketConfig struct {
	Live []LiveExchangeConfig `toml:"live"`
}

type LiveExchangeConfig struct {
	Name           string `toml:"name"`
	RESTBaseURL    string `toml:"rest_base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type BrandConfig struct {
	Name           string `toml:"name"`
	PrimaryColor   string `toml:"primary_color"`
	SecondaryColor string `toml:"secondary_color"`
	AccentColor    string `toml:"accent_color"`
}
