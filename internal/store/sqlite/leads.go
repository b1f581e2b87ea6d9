package sqlite

import (
	"context"
	"errors"

	"cerebro/internal/store/model"

	"gorm.io/gorm"
)

type leadRepository struct {
	db *gorm.DB
}

func NewLeadRepo(db *gorm.DB) *leadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) CreateDemo(ctx context.Context, req *model.DemoRequestModel) error {
	if req == nil {
		return errors.New("demo request cannot be nil")
	}
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *leadRepository) CreateInvestor(ctx context.Context, req *model.InvestorRequestModel) error {
	if req == nil {
		return errors.New("investor request cannot be nil")
	}
	return r.db.WithContext(ctx).Create(req).Error
}
