package model

import (
	"time"

	"gorm.io/datatypes"
)

type SignalModel struct {
	ID         int64          `gorm:"column:id;primaryKey"`
	Timestamp  time.Time      `gorm:"column:timestamp;index"`
	Exchange   string         `gorm:"column:exchange;index"`
	Symbol     string         `gorm:"column:symbol;index"`
	SignalType string         `gorm:"column:signal_type"`
	Confidence float64        `gorm:"column:confidence"`
	Price      float64        `gorm:"column:price"`
	Volume     float64        `gorm:"column:volume"`
	Metadata   datatypes.JSON `gorm:"column:metadata;type:TEXT"`
}

func (SignalModel) TableName() string { return "signals" }

type UserModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	Email          string    `gorm:"column:email;uniqueIndex"`
	HashedPassword string    `gorm:"column:hashed_password"`
	Wallet         string    `gorm:"column:wallet"`
	Permissions    string    `gorm:"column:permissions"`
	IsActive       bool      `gorm:"column:is_active;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (UserModel) TableName() string { return "users" }

type StrategyModel struct {
	ID        int64          `gorm:"column:id;primaryKey"`
	UserID    int64          `gorm:"column:user_id;index"`
	Name      string         `gorm:"column:name;index"`
	Market    string         `gorm:"column:market"`
	State     string         `gorm:"column:state;default:inactive"`
	PnL       float64        `gorm:"column:pnl"`
	Config    datatypes.JSON `gorm:"column:config;type:TEXT"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (StrategyModel) TableName() string { return "strategies" }

type DemoRequestModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email"`
	Telegram  string    `gorm:"column:telegram"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (DemoRequestModel) TableName() string { return "demo_requests" }

type InvestorRequestModel struct {
	ID                 int64     `gorm:"column:id;primaryKey"`
	Name               string    `gorm:"column:name"`
	Email              string    `gorm:"column:email"`
	ExpectedInvestment string    `gorm:"column:expected_investment"`
	CreatedAt          time.Time `gorm:"column:created_at"`
}

func (InvestorRequestModel) TableName() string { return "investor_requests" }

// WalletTransactionModel 的金额存字符串以保留精度，写入前由服务层校验。
type WalletTransactionModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Hash        string    `gorm:"column:hash;uniqueIndex"`
	FromAddress string    `gorm:"column:from_address"`
	ToAddress   string    `gorm:"column:to_address"`
	Amount      string    `gorm:"column:amount"`
	Token       string    `gorm:"column:token"`
	Network     string    `gorm:"column:network;default:ETHEREUM"`
	Status      string    `gorm:"column:status;default:pending"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (WalletTransactionModel) TableName() string { return "wallet_transactions" }
