package binance

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cerebro/internal/market"

	"github.com/adshao/go-binance/v2"
)

// Config 描述 Binance 行情源的访问方式。
type Config struct {
	RESTBaseURL string
	HTTPTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.RESTBaseURL) == "" {
		c.RESTBaseURL = "https://api.binance.com"
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 10 * time.Second
	}
	return c
}

// Source 基于 go-binance SDK 实现 market.Source。
type Source struct {
	cfg    Config
	client *binance.Client
}

func New(cfg Config) *Source {
	final := cfg.withDefaults()
	client := binance.NewClient("", "")
	client.BaseURL = strings.TrimSpace(final.RESTBaseURL)
	client.HTTPClient = &http.Client{Timeout: final.HTTPTimeout}
	return &Source{cfg: final, client: client}
}

func (s *Source) FetchTicker(ctx context.Context, symbol string) (market.Ticker, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return market.Ticker{}, fmt.Errorf("symbol is required")
	}
	// Binance requires symbols without slashes (e.g., BTCUSDT)
	cleanSymbol := toExchangeSymbol(symbol)

	stats, err := s.client.NewListPriceChangeStatsService().Symbol(cleanSymbol).Do(ctx)
	if err != nil {
		return market.Ticker{}, fmt.Errorf("fetch ticker %s: %w", cleanSymbol, err)
	}
	if len(stats) == 0 {
		return market.Ticker{}, fmt.Errorf("fetch ticker %s: empty response", cleanSymbol)
	}
	st := stats[0]
	ticker := market.Ticker{
		Last:   parseFloat(st.LastPrice),
		Bid:    parseFloat(st.BidPrice),
		Ask:    parseFloat(st.AskPrice),
		Volume: parseFloat(st.Volume),
	}
	return ticker, nil
}

func toExchangeSymbol(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	symbol = strings.ReplaceAll(symbol, "/", "")
	return strings.ReplaceAll(symbol, "-", "")
}

func parseFloat(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}
