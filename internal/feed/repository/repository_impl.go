package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/poultrylabs/brooder/internal/feed/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, txn *domain.FeedTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.FeedTransaction, error) {
	var txn domain.FeedTransaction
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

func (r *repo) FindByDailyRecord(ctx context.Context, dailyRecordID snowflake.ID) (*domain.FeedTransaction, error) {
	var txn domain.FeedTransaction
	err := r.db.WithContext(ctx).Where("daily_record_id = ?", dailyRecordID).First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

func (r *repo) ListByBatch(ctx context.Context, batchNo string) ([]*domain.FeedTransaction, error) {
	var txns []*domain.FeedTransaction
	err := r.db.WithContext(ctx).
		Where("batch_no = ?", batchNo).
		Order("date desc, id desc").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *repo) Totals(ctx context.Context, batchNo string) (float64, float64, error) {
	var totals struct {
		TotalIn  float64
		TotalOut float64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.FeedTransaction{}).
		Select("COALESCE(SUM(kg_in), 0) AS total_in, COALESCE(SUM(kg_out), 0) AS total_out").
		Where("batch_no = ?", batchNo).
		Scan(&totals).Error
	if err != nil {
		return 0, 0, err
	}
	return totals.TotalIn, totals.TotalOut, nil
}

func (r *repo) Update(ctx context.Context, txn *domain.FeedTransaction) error {
	return r.db.WithContext(ctx).Save(txn).Error
}

func (r *repo) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.FeedTransaction{}).Error
}
