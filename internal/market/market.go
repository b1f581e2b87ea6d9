package market

import (
	"context"
	"time"
)

// Ticker is a raw reading obtained from an exchange adapter.
type Ticker struct {
	Last   float64
	Bid    float64
	Ask    float64
	Volume float64
}

// Snapshot is a point-in-time market reading, real or synthetic.
// It is regenerated on every request and never persisted.
type Snapshot struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Bid       float64   `json:"bid"`
	Ask       float64   `json:"ask"`
	Volume    float64   `json:"volume"`
	Timestamp time.Time `json:"timestamp"`
	Exchange  string    `json:"exchange"`
	Error     string    `json:"error,omitempty"`
}

// Source provides current tickers for one exchange.
type Source interface {
	FetchTicker(ctx context.Context, symbol string) (Ticker, error)
}
