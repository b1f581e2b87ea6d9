package market

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubSource struct {
	ticker Ticker
	err    error
	calls  int
}

func (s *stubSource) FetchTicker(_ context.Context, _ string) (Ticker, error) {
	s.calls++
	return s.ticker, s.err
}

func TestSyntheticPrice_Deterministic(t *testing.T) {
	first := SyntheticPrice("BTC/USDT")
	second := SyntheticPrice("BTC/USDT")
	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first, 50000.0)
	assert.Less(t, first, 60000.0)

	other := SyntheticPrice("ETH/USDT")
	assert.GreaterOrEqual(t, other, 50000.0)
	assert.Less(t, other, 60000.0)
}

func TestService_SyntheticSnapshotForUnknownExchange(t *testing.T) {
	svc := NewService(nil)

	snap := svc.Snapshot(context.Background(), "kraken", "BTC/USDT")
	assert.Equal(t, "BTC/USDT", snap.Symbol)
	assert.Equal(t, "kraken", snap.Exchange)
	assert.Equal(t, SyntheticPrice("BTC/USDT"), snap.Price)
	assert.Equal(t, snap.Price-50, snap.Bid)
	assert.Equal(t, snap.Price+50, snap.Ask)
	assert.Empty(t, snap.Error)

	again := svc.Snapshot(context.Background(), "kraken", "BTC/USDT")
	assert.Equal(t, snap.Price, again.Price)
}

func TestService_UsesLiveSourceWhenConfigured(t *testing.T) {
	src := &stubSource{ticker: Ticker{Last: 61000, Bid: 60990, Ask: 61010, Volume: 42}}
	svc := NewService(map[string]Source{"binance": src})

	snap := svc.Snapshot(context.Background(), "Binance", "BTC/USDT")
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, 61000.0, snap.Price)
	assert.Equal(t, 60990.0, snap.Bid)
	assert.Equal(t, 61010.0, snap.Ask)
	assert.Equal(t, 42.0, snap.Volume)
	assert.Equal(t, "binance", snap.Exchange)
	assert.Empty(t, snap.Error)
}

func TestService_FallsBackWhenLiveSourceFails(t *testing.T) {
	src := &stubSource{err: errors.New("connection refused")}
	svc := NewService(map[string]Source{"binance": src})

	snap := svc.Snapshot(context.Background(), "binance", "BTC/USDT")
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, SyntheticPrice("BTC/USDT"), snap.Price)
	assert.Equal(t, "connection refused", snap.Error)
	assert.Equal(t, "binance", snap.Exchange)
}
