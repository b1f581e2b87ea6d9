package sqlite

import (
	"context"
	"errors"
	"time"

	"cerebro/internal/store"
	"cerebro/internal/store/model"

	"gorm.io/gorm"
)

type strategyRepository struct {
	db *gorm.DB
}

func NewStrategyRepo(db *gorm.DB) *strategyRepository {
	return &strategyRepository{db: db}
}

func (r *strategyRepository) Create(ctx context.Context, strategy *model.StrategyModel) error {
	if strategy == nil {
		return errors.New("strategy cannot be nil")
	}
	return r.db.WithContext(ctx).Create(strategy).Error
}

func (r *strategyRepository) FindByID(ctx context.Context, id int64) (*model.StrategyModel, error) {
	var strategy model.StrategyModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&strategy).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &strategy, nil
}

func (r *strategyRepository) List(ctx context.Context, q store.StrategyQuery) ([]model.StrategyModel, error) {
	if q.Limit <= 0 {
		q.Limit = 100
	}
	tx := r.db.WithContext(ctx).Model(&model.StrategyModel{})
	if q.UserID > 0 {
		tx = tx.Where("user_id = ?", q.UserID)
	}
	var strategies []model.StrategyModel
	if err := tx.Order("id").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&strategies).Error; err != nil {
		return nil, err
	}
	return strategies, nil
}

func (r *strategyRepository) ListCreatedSince(ctx context.Context, since time.Time, userID int64) ([]model.StrategyModel, error) {
	tx := r.db.WithContext(ctx).Model(&model.StrategyModel{}).Where("created_at >= ?", since)
	if userID > 0 {
		tx = tx.Where("user_id = ?", userID)
	}
	var strategies []model.StrategyModel
	if err := tx.Find(&strategies).Error; err != nil {
		return nil, err
	}
	return strategies, nil
}

func (r *strategyRepository) Save(ctx context.Context, strategy *model.StrategyModel) error {
	if strategy == nil {
		return errors.New("strategy cannot be nil")
	}
	return r.db.WithContext(ctx).Save(strategy).Error
}

func (r *strategyRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.StrategyModel{}, id).Error
}

func (r *strategyRepository) Count(ctx context.Context, userID int64) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.StrategyModel{})
	if userID > 0 {
		tx = tx.Where("user_id = ?", userID)
	}
	var count int64
	err := tx.Count(&count).Error
	return count, err
}

func (r *strategyRepository) CountByState(ctx context.Context, state string, userID int64) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.StrategyModel{}).Where("state = ?", state)
	if userID > 0 {
		tx = tx.Where("user_id = ?", userID)
	}
	var count int64
	err := tx.Count(&count).Error
	return count, err
}

func (r *strategyRepository) SumPnL(ctx context.Context, userID int64) (float64, error) {
	tx := r.db.WithContext(ctx).Model(&model.StrategyModel{})
	if userID > 0 {
		tx = tx.Where("user_id = ?", userID)
	}
	var total *float64
	if err := tx.Select("SUM(pnl)").Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
