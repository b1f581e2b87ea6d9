package market

import (
	"context"
	"strings"
	"time"

	"cerebro/internal/logger"
)

// Service 是行情门面：优先走配置的 live source，失败时退回合成行情。
// 行情退化永远不是硬错误，调用方总能拿到一个可用的 Snapshot。
type Service struct {
	live      map[string]Source
	synthetic Source
	nowFn     func() time.Time
}

func NewService(live map[string]Source) *Service {
	if live == nil {
		live = map[string]Source{}
	}
	return &Service{
		live:      live,
		synthetic: SyntheticSource{},
		nowFn:     time.Now,
	}
}

// Snapshot returns current market data for (exchange, symbol).
// Live adapter errors are annotated on the snapshot, never returned.
func (s *Service) Snapshot(ctx context.Context, exchange, symbol string) Snapshot {
	exchange = strings.ToLower(strings.TrimSpace(exchange))
	now := s.nowFn().UTC()

	if src, ok := s.live[exchange]; ok {
		ticker, err := src.FetchTicker(ctx, symbol)
		if err == nil {
			return Snapshot{
				Symbol:    symbol,
				Price:     ticker.Last,
				Bid:       ticker.Bid,
				Ask:       ticker.Ask,
				Volume:    ticker.Volume,
				Timestamp: now,
				Exchange:  exchange,
			}
		}
		logger.Warnf("live ticker %s %s failed, falling back to synthetic: %v", exchange, symbol, err)
		snap := s.syntheticSnapshot(exchange, symbol, now)
		snap.Error = err.Error()
		return snap
	}

	return s.syntheticSnapshot(exchange, symbol, now)
}

func (s *Service) syntheticSnapshot(exchange, symbol string, now time.Time) Snapshot {
	ticker, _ := s.synthetic.FetchTicker(context.Background(), symbol)
	return Snapshot{
		Symbol:    symbol,
		Price:     ticker.Last,
		Bid:       ticker.Bid,
		Ask:       ticker.Ask,
		Volume:    ticker.Volume,
		Timestamp: now,
		Exchange:  exchange,
	}
}
