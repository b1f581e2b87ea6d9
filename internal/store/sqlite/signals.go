package sqlite

import (
	"context"
	"errors"
	"time"

	"cerebro/internal/store"
	"cerebro/internal/store/model"

	"gorm.io/gorm"
)

// signalRepository implements the SignalRepository interface.
type signalRepository struct {
	db *gorm.DB
}

// NewSignalRepo creates a new signalRepository.
func NewSignalRepo(db *gorm.DB) *signalRepository {
	return &signalRepository{db: db}
}

// Create inserts a signal and fills its ID.
func (r *signalRepository) Create(ctx context.Context, signal *model.SignalModel) error {
	if signal == nil {
		return errors.New("signal cannot be nil")
	}
	return r.db.WithContext(ctx).Create(signal).Error
}

func (r *signalRepository) FindByID(ctx context.Context, id int64) (*model.SignalModel, error) {
	var signal model.SignalModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&signal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &signal, nil
}

func (r *signalRepository) List(ctx context.Context, q store.SignalQuery) ([]model.SignalModel, error) {
	if q.Limit <= 0 {
		q.Limit = 100
	}
	tx := r.db.WithContext(ctx).Model(&model.SignalModel{})
	if q.Exchange != "" {
		tx = tx.Where("exchange = ?", q.Exchange)
	}
	if q.Symbol != "" {
		tx = tx.Where("symbol = ?", q.Symbol)
	}
	var signals []model.SignalModel
	if err := tx.Order("timestamp DESC, id DESC").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&signals).Error; err != nil {
		return nil, err
	}
	return signals, nil
}

func (r *signalRepository) ListSince(ctx context.Context, since time.Time, exchange, symbol string) ([]model.SignalModel, error) {
	tx := r.db.WithContext(ctx).Model(&model.SignalModel{}).Where("timestamp >= ?", since)
	if exchange != "" {
		tx = tx.Where("exchange = ?", exchange)
	}
	if symbol != "" {
		tx = tx.Where("symbol = ?", symbol)
	}
	var signals []model.SignalModel
	if err := tx.Find(&signals).Error; err != nil {
		return nil, err
	}
	return signals, nil
}

func (r *signalRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SignalModel{}).
		Where("timestamp >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *signalRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SignalModel{}).Count(&count).Error
	return count, err
}
