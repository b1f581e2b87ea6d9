package signal

import (
	"math/rand"
	"sync"
	"time"

	"cerebro/internal/market"
)

const (
	TypeBuy  = "BUY"
	TypeSell = "SELL"
	TypeHold = "HOLD"
)

var (
	signalTypes = []string{TypeBuy, TypeSell, TypeHold}
	sentiments  = []string{"bullish", "bearish", "neutral"}
	indicators  = []string{"RSI", "MACD", "Bollinger Bands"}
)

// Metadata is attached to every generated signal and persisted as JSON.
type Metadata struct {
	ModelVersion    string   `json:"model_version"`
	Indicators      []string `json:"indicators"`
	MarketSentiment string   `json:"market_sentiment"`
	Volatility      float64  `json:"volatility"`
}

// Signal 是一条合成交易信号，生成后不可变。
type Signal struct {
	Exchange   string    `json:"exchange"`
	Symbol     string    `json:"symbol"`
	Type       string    `json:"signal_type"`
	Confidence float64   `json:"confidence"`
	Price      float64   `json:"price"`
	Volume     float64   `json:"volume"`
	Timestamp  time.Time `json:"timestamp"`
	Metadata   Metadata  `json:"metadata"`
}

// Generator produces synthetic signals. Pure generation: no persistence, no
// publishing, the only side effect is consuming randomness. The RNG is
// injected so tests can feed deterministic sequences.
type Generator struct {
	mu    sync.Mutex
	rng   *rand.Rand
	nowFn func() time.Time
}

func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng, nowFn: time.Now}
}

// Generate draws one signal for (exchange, symbol). When snap is non-nil its
// price and volume seed the signal, otherwise both are drawn uniformly.
// Confidence always lands in [0.6, 0.95).
func (g *Generator) Generate(exchange, symbol string, snap *market.Snapshot) Signal {
	g.mu.Lock()
	defer g.mu.Unlock()

	confidence := 0.6 + g.rng.Float64()*0.35
	price := 40000 + g.rng.Float64()*20000
	volume := 1000 + g.rng.Float64()*9000
	if snap != nil {
		if snap.Price > 0 {
			price = snap.Price
		}
		if snap.Volume > 0 {
			volume = snap.Volume
		}
	}

	return Signal{
		Exchange:   exchange,
		Symbol:     symbol,
		Type:       signalTypes[g.rng.Intn(len(signalTypes))],
		Confidence: confidence,
		Price:      price,
		Volume:     volume,
		Timestamp:  g.nowFn().UTC(),
		Metadata: Metadata{
			ModelVersion:    "v1.0",
			Indicators:      append([]string(nil), indicators...),
			MarketSentiment: sentiments[g.rng.Intn(len(sentiments))],
			Volatility:      0.1 + g.rng.Float64()*0.4,
		},
	}
}
