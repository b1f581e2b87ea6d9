package signal

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"cerebro/internal/logger"
	"cerebro/internal/market"
	"cerebro/internal/pubsub"
	"cerebro/internal/store"
	"cerebro/internal/store/model"
)

const (
	defaultExchange = "binance"
	defaultSymbol   = "BTC/USDT"
)

// Config 描述信号服务的生成矩阵与发布主题。
type Config struct {
	Topic         string
	Symbols       []string
	Exchanges     []string
	SeedSymbols   []string
	SeedExchanges []string
}

// Service drives signal generation: single on-demand signals, the periodic
// batch over the symbol/exchange matrix, and one-time bulk seeding.
type Service struct {
	gen       *Generator
	signals   store.SignalRepository
	publisher pubsub.Publisher
	cfg       Config

	mu  sync.Mutex
	rng *rand.Rand
}

func NewService(gen *Generator, signals store.SignalRepository, publisher pubsub.Publisher, cfg Config, rng *rand.Rand) *Service {
	if gen == nil {
		gen = NewGenerator(nil)
	}
	if publisher == nil {
		publisher = pubsub.Noop{}
	}
	if cfg.Topic == "" {
		cfg.Topic = "new_signals"
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{gen: gen, signals: signals, publisher: publisher, cfg: cfg, rng: rng}
}

// GenerateSignal 是边界操作：空参数退回默认交易所/交易对。
func (s *Service) GenerateSignal(exchange, symbol string, snap *market.Snapshot) Signal {
	if exchange == "" {
		exchange = defaultExchange
	}
	if symbol == "" {
		symbol = defaultSymbol
	}
	sig := s.gen.Generate(exchange, symbol, snap)
	logger.Infof("generated signal: %s for %s with confidence %.2f", sig.Type, symbol, sig.Confidence)
	return sig
}

// RunBatch persists and publishes one signal per (symbol, exchange) pair.
// A failed pair is logged and skipped; the rest of the batch continues.
// Returns how many signals were persisted and published.
func (s *Service) RunBatch(ctx context.Context) (persisted, published int) {
	for _, symbol := range s.cfg.Symbols {
		for _, exchange := range s.cfg.Exchanges {
			sig := s.gen.Generate(exchange, symbol, nil)
			record, err := s.persist(ctx, sig)
			if err != nil {
				logger.Errorf("failed to save signal for %s on %s: %v", symbol, exchange, err)
				continue
			}
			persisted++
			if s.publisher.Publish(ctx, s.cfg.Topic, map[string]any{
				"id":          record.ID,
				"exchange":    record.Exchange,
				"symbol":      record.Symbol,
				"signal_type": record.SignalType,
				"confidence":  record.Confidence,
				"timestamp":   record.Timestamp.Format(time.RFC3339Nano),
			}) {
				published++
			}
			logger.Infof("generated and saved signal: %s for %s on %s", sig.Type, symbol, exchange)
		}
	}
	return persisted, published
}

// SeedInitialSignals persists count signals over the broader seed matrix
// without publishing any of them. Used for bootstrap population.
func (s *Service) SeedInitialSignals(ctx context.Context, count int) (int, error) {
	seeded := 0
	for i := 0; i < count; i++ {
		symbol := s.pick(s.cfg.SeedSymbols, defaultSymbol)
		exchange := s.pick(s.cfg.SeedExchanges, defaultExchange)
		sig := s.gen.Generate(exchange, symbol, nil)
		if _, err := s.persist(ctx, sig); err != nil {
			return seeded, err
		}
		seeded++
	}
	logger.Infof("seeded %d initial signals", seeded)
	return seeded, nil
}

func (s *Service) persist(ctx context.Context, sig Signal) (*model.SignalModel, error) {
	meta, err := json.Marshal(sig.Metadata)
	if err != nil {
		return nil, err
	}
	record := &model.SignalModel{
		Timestamp:  sig.Timestamp,
		Exchange:   sig.Exchange,
		Symbol:     sig.Symbol,
		SignalType: sig.Type,
		Confidence: sig.Confidence,
		Price:      sig.Price,
		Volume:     sig.Volume,
		Metadata:   meta,
	}
	if err := s.signals.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) pick(options []string, fallback string) string {
	if len(options) == 0 {
		return fallback
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return options[s.rng.Intn(len(options))]
}
