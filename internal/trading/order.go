package trading

import (
	"errors"
	"time"
)

var (
	// ErrInvalidOrder rejects bad side/amount at placement. Nothing is stored.
	ErrInvalidOrder = errors.New("invalid order")
	// ErrOrderNotFound means the order id is unknown to the book.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderNotPending means a cancel hit an order already in a terminal state.
	ErrOrderNotPending = errors.New("order is not pending")
)

type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusFilled    Status = "filled"
	StatusCancelled Status = "cancelled"
)

// Order is a mock order held in memory. filled+remaining == amount holds at
// all times; once filled or cancelled the order never mutates again.
type Order struct {
	ID        string    `json:"id"`
	Exchange  string    `json:"exchange"`
	Symbol    string    `json:"symbol"`
	Side      Side      `json:"side"`
	Amount    float64   `json:"amount"`
	Price     *float64  `json:"price"` // nil means market order
	Type      string    `json:"type"`  // "market" or "limit"
	Status    Status    `json:"status"`
	Filled    float64   `json:"filled"`
	Remaining float64   `json:"remaining"`
	Cost      float64   `json:"cost"`
	Timestamp time.Time `json:"timestamp"`
}
