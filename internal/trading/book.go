package trading

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cerebro/internal/logger"
	"cerebro/internal/pubsub"
)

// TopicOrderUpdates carries fill/cancel events for placed orders.
const TopicOrderUpdates = "order_updates"

// Book owns every known mock order and enforces its lifecycle. Orders are
// never deleted; terminal orders stay queryable. Resolution and cancellation
// race for the single terminal transition, exactly one wins.
type Book struct {
	mu      sync.Mutex
	orders  map[string]*Order
	timers  map[string]*time.Timer
	counter int64

	publisher     pubsub.Publisher
	fillDelay     time.Duration
	fallbackPrice float64
	nowFn         func() time.Time
}

func NewBook(publisher pubsub.Publisher, fillDelay time.Duration, fallbackPrice float64) *Book {
	if publisher == nil {
		publisher = pubsub.Noop{}
	}
	if fallbackPrice <= 0 {
		fallbackPrice = 50000
	}
	return &Book{
		orders:        make(map[string]*Order),
		timers:        make(map[string]*time.Timer),
		publisher:     publisher,
		fillDelay:     fillDelay,
		fallbackPrice: fallbackPrice,
		nowFn:         time.Now,
	}
}

// Place validates and stores a pending order, schedules its deferred fill and
// returns immediately. The order is visible to Get before the fill resolves.
func (b *Book) Place(exchange, symbol string, side Side, amount float64, price *float64) (Order, error) {
	if amount <= 0 {
		return Order{}, fmt.Errorf("%w: amount must be positive, got %v", ErrInvalidOrder, amount)
	}
	if side != SideBuy && side != SideSell {
		return Order{}, fmt.Errorf("%w: side must be buy or sell, got %q", ErrInvalidOrder, side)
	}

	b.mu.Lock()
	b.counter++
	id := fmt.Sprintf("mock_order_%d", b.counter)
	orderType := "market"
	if price != nil {
		orderType = "limit"
	}
	order := &Order{
		ID:        id,
		Exchange:  exchange,
		Symbol:    symbol,
		Side:      side,
		Amount:    amount,
		Price:     price,
		Type:      orderType,
		Status:    StatusPending,
		Filled:    0,
		Remaining: amount,
		Cost:      0,
		Timestamp: b.nowFn().UTC(),
	}
	b.orders[id] = order
	b.timers[id] = time.AfterFunc(b.fillDelay, func() { b.resolve(id) })
	placed := *order
	b.mu.Unlock()

	logger.Infof("mock order placed: %s - %s %v %s on %s", id, side, amount, symbol, exchange)
	return placed, nil
}

// resolve transitions a still-pending order to filled. A no-op when the order
// was cancelled first or is unknown.
func (b *Book) resolve(id string) {
	b.mu.Lock()
	order, ok := b.orders[id]
	delete(b.timers, id)
	if !ok || order.Status != StatusPending {
		b.mu.Unlock()
		return
	}
	order.Status = StatusFilled
	order.Filled = order.Amount
	order.Remaining = 0
	refPrice := b.fallbackPrice
	if order.Price != nil {
		refPrice = *order.Price
	}
	order.Cost = order.Amount * refPrice
	ts := b.nowFn().UTC()
	b.mu.Unlock()

	b.publisher.Publish(context.Background(), TopicOrderUpdates, map[string]any{
		"order_id":  id,
		"status":    string(StatusFilled),
		"timestamp": ts.Format(time.RFC3339Nano),
	})
	logger.Infof("mock order filled: %s", id)
}

// Get returns a copy of the order.
func (b *Book) Get(id string) (Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	order, ok := b.orders[id]
	if !ok {
		return Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	return *order, nil
}

// Cancel transitions a pending order to cancelled. The pending fill timer is
// revoked first; the status check in resolve guards the window where the
// timer already fired.
func (b *Book) Cancel(ctx context.Context, id string) error {
	b.mu.Lock()
	order, ok := b.orders[id]
	if !ok {
		b.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	if order.Status != StatusPending {
		status := order.Status
		b.mu.Unlock()
		return fmt.Errorf("%w: %s is %s", ErrOrderNotPending, id, status)
	}
	if timer, ok := b.timers[id]; ok {
		timer.Stop()
		delete(b.timers, id)
	}
	order.Status = StatusCancelled
	ts := b.nowFn().UTC()
	b.mu.Unlock()

	b.publisher.Publish(ctx, TopicOrderUpdates, map[string]any{
		"order_id":  id,
		"status":    string(StatusCancelled),
		"timestamp": ts.Format(time.RFC3339Nano),
	})
	logger.Infof("mock order cancelled: %s", id)
	return nil
}
