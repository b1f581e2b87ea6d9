package trading

import (
	"context"
	"fmt"
	"time"

	"cerebro/internal/logger"
	"cerebro/internal/store/botlog"
)

// PlaceResult 是下单的边界返回值，成功与否都以结构化结果表达。
type PlaceResult struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// AssetBalance mirrors the free/used/total split exchanges report.
type AssetBalance struct {
	Free  float64 `json:"free"`
	Used  float64 `json:"used"`
	Total float64 `json:"total"`
}

// Service 封装 Book，对外提供交易边界操作并记录机器人活动日志。
type Service struct {
	book *Book
	logs *botlog.Store // optional
}

func NewService(book *Book, logs *botlog.Store) *Service {
	return &Service{book: book, logs: logs}
}

func (s *Service) PlaceOrder(ctx context.Context, exchange, symbol, side string, amount float64, price *float64) (PlaceResult, error) {
	order, err := s.book.Place(exchange, symbol, Side(side), amount, price)
	if err != nil {
		return PlaceResult{
			Success: false,
			Message: "Failed to place order",
			Error:   err.Error(),
		}, err
	}
	s.record(ctx, exchange, "place_order", "ok",
		fmt.Sprintf(`{"order_id":%q,"symbol":%q,"side":%q}`, order.ID, symbol, side))
	return PlaceResult{
		Success: true,
		OrderID: order.ID,
		Status:  string(order.Status),
		Message: "Mock order placed successfully",
	}, nil
}

func (s *Service) OrderStatus(ctx context.Context, exchange, orderID string) (Order, error) {
	return s.book.Get(orderID)
}

func (s *Service) CancelOrder(ctx context.Context, exchange, orderID string) error {
	if err := s.book.Cancel(ctx, orderID); err != nil {
		return err
	}
	s.record(ctx, exchange, "cancel_order", "ok", fmt.Sprintf(`{"order_id":%q}`, orderID))
	return nil
}

// PortfolioBalance returns static mock balances.
func (s *Service) PortfolioBalance(exchange string) map[string]AssetBalance {
	return map[string]AssetBalance{
		"BTC":  {Free: 0.5, Used: 0.1, Total: 0.6},
		"ETH":  {Free: 10.0, Used: 2.0, Total: 12.0},
		"USDT": {Free: 50000.0, Used: 10000.0, Total: 60000.0},
	}
}

func (s *Service) record(ctx context.Context, exchange, action, status, metadata string) {
	if s.logs == nil {
		return
	}
	if _, err := s.logs.Append(ctx, botlog.Record{
		Timestamp: time.Now().UTC().Unix(),
		BotID:     "mock-trader",
		Exchange:  exchange,
		Action:    action,
		Status:    status,
		Metadata:  metadata,
	}); err != nil {
		logger.Warnf("bot log append failed: %v", err)
	}
}
