package store

import (
	"context"
	"time"

	"cerebro/internal/store/model"
)

// SignalQuery 用于筛选信号列表。
type SignalQuery struct {
	Exchange string
	Symbol   string
	Limit    int
	Offset   int
}

// StrategyQuery 用于筛选策略列表。
type StrategyQuery struct {
	UserID int64
	Limit  int
	Offset int
}

// WalletQuery 用于筛选钱包流水。
type WalletQuery struct {
	Token  string
	Status string
	Limit  int
	Offset int
}

type SignalRepository interface {
	Create(ctx context.Context, signal *model.SignalModel) error
	FindByID(ctx context.Context, id int64) (*model.SignalModel, error)
	List(ctx context.Context, q SignalQuery) ([]model.SignalModel, error)
	ListSince(ctx context.Context, since time.Time, exchange, symbol string) ([]model.SignalModel, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *model.UserModel) error
	FindByEmail(ctx context.Context, email string) (*model.UserModel, error)
	FindByID(ctx context.Context, id int64) (*model.UserModel, error)
}

type StrategyRepository interface {
	Create(ctx context.Context, strategy *model.StrategyModel) error
	FindByID(ctx context.Context, id int64) (*model.StrategyModel, error)
	List(ctx context.Context, q StrategyQuery) ([]model.StrategyModel, error)
	ListCreatedSince(ctx context.Context, since time.Time, userID int64) ([]model.StrategyModel, error)
	Save(ctx context.Context, strategy *model.StrategyModel) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context, userID int64) (int64, error)
	CountByState(ctx context.Context, state string, userID int64) (int64, error)
	SumPnL(ctx context.Context, userID int64) (float64, error)
}

type LeadRepository interface {
	CreateDemo(ctx context.Context, req *model.DemoRequestModel) error
	CreateInvestor(ctx context.Context, req *model.InvestorRequestModel) error
}

type WalletRepository interface {
	Create(ctx context.Context, tx *model.WalletTransactionModel) error
	FindByHash(ctx context.Context, hash string) (*model.WalletTransactionModel, error)
	UpdateStatus(ctx context.Context, hash, status string) error
	List(ctx context.Context, q WalletQuery) ([]model.WalletTransactionModel, error)
}

// Store 聚合所有仓储；调用方通过接口依赖，便于在测试中替换。
type Store interface {
	Signals() SignalRepository
	Users() UserRepository
	Strategies() StrategyRepository
	Leads() LeadRepository
	Wallet() WalletRepository
	Close() error
}
