package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cerebro/internal/store"
	"cerebro/internal/store/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

type SqliteStore struct {
	db *gorm.DB
}

func NewSqliteStore(path string) (*SqliteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&cache=shared", path)
	// DriverName selects the cgo-free modernc.org/sqlite driver; the DSN's
	// _pragma syntax is only understood by that driver.
	db, err := gorm.Open(&sqlite.Dialector{DriverName: "sqlite", DSN: dsn}, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}
	return newSqliteStore(db)
}

func NewSqliteStoreFromDB(db *gorm.DB) (*SqliteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm db cannot be nil")
	}
	return newSqliteStore(db)
}

func newSqliteStore(db *gorm.DB) (*SqliteStore, error) {
	models := []interface{}{
		&model.SignalModel{},
		&model.UserModel{},
		&model.StrategyModel{},
		&model.DemoRequestModel{},
		&model.InvestorRequestModel{},
		&model.WalletTransactionModel{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(2)
		sqlDB.SetMaxIdleConns(2)
	}
	return &SqliteStore{db: db}, nil
}

func (s *SqliteStore) Signals() store.SignalRepository { return NewSignalRepo(s.db) }

func (s *SqliteStore) Users() store.UserRepository { return NewUserRepo(s.db) }

func (s *SqliteStore) Strategies() store.StrategyRepository { return NewStrategyRepo(s.db) }

func (s *SqliteStore) Leads() store.LeadRepository { return NewLeadRepo(s.db) }

func (s *SqliteStore) Wallet() store.WalletRepository { return NewWalletRepo(s.db) }

func (s *SqliteStore) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
