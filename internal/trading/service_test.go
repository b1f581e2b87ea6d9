package trading

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_PlaceOrder(t *testing.T) {
	svc := NewService(NewBook(&recordingPublisher{}, time.Hour, 50000), nil)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		result, err := svc.PlaceOrder(ctx, "binance", "BTC/USDT", "buy", 1.5, nil)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "mock_order_1", result.OrderID)
		assert.Equal(t, "pending", result.Status)
		assert.Equal(t, "Mock order placed successfully", result.Message)
		assert.Empty(t, result.Error)
	})

	t.Run("failure keeps structured result", func(t *testing.T) {
		result, err := svc.PlaceOrder(ctx, "binance", "BTC/USDT", "buy", -1, nil)
		assert.ErrorIs(t, err, ErrInvalidOrder)
		assert.False(t, result.Success)
		assert.Empty(t, result.OrderID)
		assert.Equal(t, "Failed to place order", result.Message)
		assert.NotEmpty(t, result.Error)
	})
}

func TestService_OrderStatusAndCancel(t *testing.T) {
	svc := NewService(NewBook(&recordingPublisher{}, time.Hour, 50000), nil)
	ctx := context.Background()

	result, err := svc.PlaceOrder(ctx, "binance", "ETH/USDT", "sell", 2, nil)
	require.NoError(t, err)

	order, err := svc.OrderStatus(ctx, "binance", result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, SideSell, order.Side)

	require.NoError(t, svc.CancelOrder(ctx, "binance", result.OrderID))
	order, err = svc.OrderStatus(ctx, "binance", result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, order.Status)

	err = svc.CancelOrder(ctx, "binance", "mock_order_777")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestService_PortfolioBalance(t *testing.T) {
	svc := NewService(NewBook(&recordingPublisher{}, time.Hour, 50000), nil)

	balances := svc.PortfolioBalance("binance")
	require.Len(t, balances, 3)
	for asset, balance := range balances {
		assert.Equal(t, balance.Total, balance.Free+balance.Used, "asset %s", asset)
	}
	assert.Equal(t, 0.5, balances["BTC"].Free)
	assert.Equal(t, 60000.0, balances["USDT"].Total)
}
