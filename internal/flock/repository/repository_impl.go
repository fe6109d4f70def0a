package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/poultrylabs/brooder/internal/flock/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, flock *domain.Flock) error {
	return r.db.WithContext(ctx).Create(flock).Error
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.Flock, error) {
	var flock domain.Flock
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&flock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &flock, nil
}

func (r *repo) FindByBatchNo(ctx context.Context, batchNo string) (*domain.Flock, error) {
	var flock domain.Flock
	err := r.db.WithContext(ctx).Where("batch_no = ?", batchNo).First(&flock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &flock, nil
}

func (r *repo) FindActiveByOwner(ctx context.Context, ownerID snowflake.ID) (*domain.Flock, error) {
	var flock domain.Flock
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND status = ?", ownerID, domain.FlockStatusActive).
		Order("start_date desc").
		First(&flock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &flock, nil
}

func (r *repo) List(ctx context.Context, ownerID snowflake.ID) ([]*domain.Flock, error) {
	var flocks []*domain.Flock
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc, id desc").
		Find(&flocks).Error
	if err != nil {
		return nil, err
	}
	return flocks, nil
}

func (r *repo) Update(ctx context.Context, flock *domain.Flock) error {
	return r.db.WithContext(ctx).Save(flock).Error
}
