package signal

import (
	"time"

	"github.com/markcheno/go-talib"
)

const sentimentLookback = 64

// SentimentReport summarizes a cross-symbol market mood reading.
type SentimentReport struct {
	OverallSentiment string    `json:"overall_sentiment"`
	Confidence       float64   `json:"confidence"`
	FearGreedIndex   int       `json:"fear_greed_index"`
	RSI              float64   `json:"rsi"`
	Symbols          []string  `json:"symbols,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// AnalyzeMarketSentiment fabricates an overall sentiment reading. A synthetic
// random-walk price series runs through a 14-period RSI; the last RSI value
// picks the sentiment bucket so repeated calls drift like a real market mood.
func (s *Service) AnalyzeMarketSentiment(symbols []string) SentimentReport {
	s.mu.Lock()
	series := make([]float64, sentimentLookback)
	price := 50000.0
	for i := range series {
		price += price * (s.rng.Float64() - 0.5) * 0.02
		series[i] = price
	}
	confidence := 0.7 + s.rng.Float64()*0.2
	fearGreed := 20 + s.rng.Intn(61)
	s.mu.Unlock()

	rsi := talib.Rsi(series, 14)
	last := rsi[len(rsi)-1]
	sentiment := "neutral"
	switch {
	case last >= 55:
		sentiment = "bullish"
	case last <= 45:
		sentiment = "bearish"
	}

	return SentimentReport{
		OverallSentiment: sentiment,
		Confidence:       confidence,
		FearGreedIndex:   fearGreed,
		RSI:              last,
		Symbols:          symbols,
		Timestamp:        time.Now().UTC(),
	}
}
