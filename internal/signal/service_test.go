package signal

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"cerebro/internal/store"
	"cerebro/internal/store/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

type fakeSignalRepo struct {
	mu      sync.Mutex
	nextID  int64
	records []model.SignalModel
	failOn  map[string]bool // symbol -> fail Create
}

func (r *fakeSignalRepo) Create(_ context.Context, signal *model.SignalModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn[signal.Symbol] {
		return errors.New("database is locked")
	}
	r.nextID++
	signal.ID = r.nextID
	r.records = append(r.records, *signal)
	return nil
}

func (r *fakeSignalRepo) FindByID(_ context.Context, id int64) (*model.SignalModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == id {
			rec := r.records[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (r *fakeSignalRepo) List(_ context.Context, _ store.SignalQuery) ([]model.SignalModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.SignalModel(nil), r.records...), nil
}

func (r *fakeSignalRepo) ListSince(_ context.Context, _ time.Time, _, _ string) ([]model.SignalModel, error) {
	return r.List(nil, store.SignalQuery{})
}

func (r *fakeSignalRepo) CountSince(_ context.Context, _ time.Time) (int64, error) {
	return r.Count(nil)
}

func (r *fakeSignalRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.records)), nil
}

type capturingPublisher struct {
	mu       sync.Mutex
	topics   []string
	payloads []map[string]any
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, payload map[string]any) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return true
}

func newTestService(repo *fakeSignalRepo, pub *capturingPublisher) *Service {
	return NewService(NewGenerator(rand.New(rand.NewSource(11))), repo, pub, Config{
		Topic:         "new_signals",
		Symbols:       []string{"BTC/USDT", "ETH/USDT", "BNB/USDT", "ADA/USDT"},
		Exchanges:     []string{"binance", "coinbase"},
		SeedSymbols:   []string{"BTC/USDT", "ETH/USDT", "BNB/USDT", "ADA/USDT", "SOL/USDT"},
		SeedExchanges: []string{"binance", "coinbase", "kraken"},
	}, rand.New(rand.NewSource(12)))
}

func TestService_RunBatchCoversMatrix(t *testing.T) {
	repo := &fakeSignalRepo{}
	pub := &capturingPublisher{}
	svc := newTestService(repo, pub)

	persisted, published := svc.RunBatch(context.Background())
	assert.Equal(t, 8, persisted)
	assert.Equal(t, 8, published)
	assert.Len(t, repo.records, 8)
	require.Len(t, pub.payloads, 8)

	// every published event carries the id assigned at persistence time
	seen := map[string]bool{}
	for i, payload := range pub.payloads {
		assert.Equal(t, "new_signals", pub.topics[i])
		id, ok := payload["id"].(int64)
		require.True(t, ok, "payload id should be the persisted row id")
		assert.Greater(t, id, int64(0))
		key := payload["exchange"].(string) + "|" + payload["symbol"].(string)
		seen[key] = true
		_, err := time.Parse(time.RFC3339Nano, payload["timestamp"].(string))
		assert.NoError(t, err)
	}
	assert.Len(t, seen, 8, "each (exchange, symbol) pair exactly once")
}

func TestService_RunBatchSkipsFailedPairs(t *testing.T) {
	repo := &fakeSignalRepo{failOn: map[string]bool{"ETH/USDT": true}}
	pub := &capturingPublisher{}
	svc := newTestService(repo, pub)

	persisted, published := svc.RunBatch(context.Background())
	assert.Equal(t, 6, persisted)
	assert.Equal(t, 6, published)
	for _, rec := range repo.records {
		assert.NotEqual(t, "ETH/USDT", rec.Symbol)
	}
}

func TestService_SeedInitialSignals(t *testing.T) {
	repo := &fakeSignalRepo{}
	pub := &capturingPublisher{}
	svc := newTestService(repo, pub)

	seeded, err := svc.SeedInitialSignals(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 100, seeded)
	assert.Len(t, repo.records, 100)
	assert.Empty(t, pub.payloads, "seeding never publishes")

	seedSymbols := map[string]bool{"BTC/USDT": true, "ETH/USDT": true, "BNB/USDT": true, "ADA/USDT": true, "SOL/USDT": true}
	seedExchanges := map[string]bool{"binance": true, "coinbase": true, "kraken": true}
	for _, rec := range repo.records {
		assert.True(t, seedSymbols[rec.Symbol], "unexpected symbol %s", rec.Symbol)
		assert.True(t, seedExchanges[rec.Exchange], "unexpected exchange %s", rec.Exchange)
	}
}

func TestService_SeedStopsOnFirstError(t *testing.T) {
	repo := &fakeSignalRepo{failOn: map[string]bool{
		"BTC/USDT": true, "ETH/USDT": true, "BNB/USDT": true, "ADA/USDT": true, "SOL/USDT": true,
	}}
	svc := newTestService(repo, &capturingPublisher{})

	seeded, err := svc.SeedInitialSignals(context.Background(), 10)
	assert.Error(t, err)
	assert.Equal(t, 0, seeded)
}

func TestService_GenerateSignalDefaults(t *testing.T) {
	svc := newTestService(&fakeSignalRepo{}, &capturingPublisher{})

	sig := svc.GenerateSignal("", "", nil)
	assert.Equal(t, "binance", sig.Exchange)
	assert.Equal(t, "BTC/USDT", sig.Symbol)

	sig = svc.GenerateSignal("kraken", "SOL/USDT", nil)
	assert.Equal(t, "kraken", sig.Exchange)
	assert.Equal(t, "SOL/USDT", sig.Symbol)
}

func TestService_PersistedMetadataIsQueryableJSON(t *testing.T) {
	repo := &fakeSignalRepo{}
	svc := newTestService(repo, &capturingPublisher{})

	_, err := svc.SeedInitialSignals(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, repo.records, 1)

	meta := string(repo.records[0].Metadata)
	assert.Equal(t, "v1.0", gjson.Get(meta, "model_version").String())
	assert.NotEmpty(t, gjson.Get(meta, "market_sentiment").String())
	assert.Equal(t, int64(3), gjson.Get(meta, "indicators.#").Int())
}
