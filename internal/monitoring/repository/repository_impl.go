package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/poultrylabs/brooder/internal/monitoring/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, rec *domain.DailyMonitoringRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.DailyMonitoringRecord, error) {
	var rec domain.DailyMonitoringRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *repo) FindLatest(ctx context.Context, batchNo string) (*domain.DailyMonitoringRecord, error) {
	var rec domain.DailyMonitoringRecord
	err := r.db.WithContext(ctx).
		Where("batch_no = ?", batchNo).
		Order("date desc").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *repo) ListByBatch(ctx context.Context, batchNo string) ([]*domain.DailyMonitoringRecord, error) {
	var recs []*domain.DailyMonitoringRecord
	err := r.db.WithContext(ctx).
		Where("batch_no = ?", batchNo).
		Order("date asc").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *repo) ListDates(ctx context.Context, batchNo string) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&domain.DailyMonitoringRecord{}).
		Where("batch_no = ?", batchNo).
		Order("date asc").
		Pluck("date", &dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}

func (r *repo) SumMortality(ctx context.Context, batchNo string) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&domain.DailyMonitoringRecord{}).
		Select("COALESCE(SUM(mortality), 0)").
		Where("batch_no = ?", batchNo).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

func (r *repo) Update(ctx context.Context, rec *domain.DailyMonitoringRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *repo) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.DailyMonitoringRecord{}).Error
}
