package sqlite

import (
	"context"
	"errors"
	"time"

	"cerebro/internal/store"
	"cerebro/internal/store/model"

	"gorm.io/gorm"
)

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepo(db *gorm.DB) *walletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) Create(ctx context.Context, tx *model.WalletTransactionModel) error {
	if tx == nil {
		return errors.New("transaction cannot be nil")
	}
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *walletRepository) FindByHash(ctx context.Context, hash string) (*model.WalletTransactionModel, error) {
	var tx model.WalletTransactionModel
	err := r.db.WithContext(ctx).Where("hash = ?", hash).First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *walletRepository) UpdateStatus(ctx context.Context, hash, status string) error {
	result := r.db.WithContext(ctx).Model(&model.WalletTransactionModel{}).
		Where("hash = ?", hash).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *walletRepository) List(ctx context.Context, q store.WalletQuery) ([]model.WalletTransactionModel, error) {
	if q.Limit <= 0 {
		q.Limit = 100
	}
	tx := r.db.WithContext(ctx).Model(&model.WalletTransactionModel{})
	if q.Token != "" {
		tx = tx.Where("token = ?", q.Token)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	var txs []model.WalletTransactionModel
	if err := tx.Order("created_at DESC, id DESC").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}
