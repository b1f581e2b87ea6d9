package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeMarketSentiment(t *testing.T) {
	svc := newTestService(&fakeSignalRepo{}, &capturingPublisher{})

	for i := 0; i < 50; i++ {
		report := svc.AnalyzeMarketSentiment([]string{"BTC/USDT", "ETH/USDT"})

		assert.Contains(t, []string{"bullish", "bearish", "neutral"}, report.OverallSentiment)
		assert.GreaterOrEqual(t, report.Confidence, 0.7)
		assert.Less(t, report.Confidence, 0.9)
		assert.GreaterOrEqual(t, report.FearGreedIndex, 20)
		assert.LessOrEqual(t, report.FearGreedIndex, 80)
		assert.GreaterOrEqual(t, report.RSI, 0.0)
		assert.LessOrEqual(t, report.RSI, 100.0)
		assert.Equal(t, []string{"BTC/USDT", "ETH/USDT"}, report.Symbols)

		switch {
		case report.RSI >= 55:
			assert.Equal(t, "bullish", report.OverallSentiment)
		case report.RSI <= 45:
			assert.Equal(t, "bearish", report.OverallSentiment)
		default:
			assert.Equal(t, "neutral", report.OverallSentiment)
		}
	}
}
