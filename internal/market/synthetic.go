package market

import (
	"context"
	"hash/fnv"
)

const (
	syntheticBase   = 50000.0
	syntheticRange  = 10000
	syntheticSpread = 50.0
	syntheticVolume = 1000000.0
)

// SyntheticSource fabricates tickers without touching any exchange.
// The price is a deterministic function of the symbol, so repeated calls
// for the same symbol always agree.
type SyntheticSource struct{}

func (SyntheticSource) FetchTicker(_ context.Context, symbol string) (Ticker, error) {
	price := SyntheticPrice(symbol)
	return Ticker{
		Last:   price,
		Bid:    price - syntheticSpread,
		Ask:    price + syntheticSpread,
		Volume: syntheticVolume,
	}, nil
}

// SyntheticPrice maps a symbol to a stable pseudo-price in
// [syntheticBase, syntheticBase+syntheticRange).
func SyntheticPrice(symbol string) float64 {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	return syntheticBase + float64(h.Sum32()%syntheticRange)
}
