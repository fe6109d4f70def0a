package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/poultrylabs/brooder/internal/sale/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, sale *domain.SaleRecord) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.SaleRecord, error) {
	var sale domain.SaleRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}

func (r *repo) ListByBatch(ctx context.Context, batchNo string) ([]*domain.SaleRecord, error) {
	var sales []*domain.SaleRecord
	err := r.db.WithContext(ctx).
		Where("batch_no = ?", batchNo).
		Order("date desc, created_at desc").
		Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *repo) SumBirds(ctx context.Context, batchNo string) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&domain.SaleRecord{}).
		Select("COALESCE(SUM(birds), 0)").
		Where("batch_no = ?", batchNo).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

func (r *repo) Update(ctx context.Context, sale *domain.SaleRecord) error {
	return r.db.WithContext(ctx).Save(sale).Error
}
