package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/poultrylabs/brooder/internal/clock"
	"github.com/poultrylabs/brooder/internal/dateutil"
	"github.com/poultrylabs/brooder/internal/flock/domain"
	monitoringdomain "github.com/poultrylabs/brooder/internal/monitoring/domain"
	"github.com/poultrylabs/brooder/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log            *zap.Logger
	GenID          *snowflake.Node
	Clock          clock.Clock
	Repo           domain.Repository
	MonitoringRepo monitoringdomain.Repository
}

type Service struct {
	log            *zap.Logger
	genID          *snowflake.Node
	clock          clock.Clock
	repo           domain.Repository
	monitoringRepo monitoringdomain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		log:            p.Log.Named("flock.service"),
		genID:          p.GenID,
		clock:          p.Clock,
		repo:           p.Repo,
		monitoringRepo: p.MonitoringRepo,
	}
}

// Create registers a new batch. One active batch per owner at a time.
func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Flock, error) {
	if req.TotalChicks <= 0 {
		return nil, domain.ErrInvalidChickCount
	}
	if req.PricePerChick < 0 {
		return nil, domain.ErrInvalidPrice
	}

	startDate := dateutil.Normalize(req.StartDate)
	if startDate.IsZero() || startDate.After(dateutil.Normalize(s.clock.Now())) {
		return nil, domain.ErrInvalidStartDate
	}

	active, err := s.repo.FindActiveByOwner(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, domain.ErrActiveBatchExists
	}

	id := s.genID.Generate()
	now := s.clock.Now().UTC()
	flock := &domain.Flock{
		ID:            id,
		OwnerID:       req.OwnerID,
		BatchNo:       domain.NewBatchNo(startDate, id),
		StartDate:     startDate,
		TotalChicks:   req.TotalChicks,
		PricePerChick: req.PricePerChick,
		Status:        domain.FlockStatusActive,
		Remarks:       req.Remarks,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, flock); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrBatchNoCollision
		}
		return nil, err
	}

	s.log.Info("batch created",
		zap.String("batch_no", flock.BatchNo),
		zap.Int("total_chicks", flock.TotalChicks),
	)
	return flock, nil
}

func (s *Service) Get(ctx context.Context, batchNo string) (*domain.Flock, error) {
	flock, err := s.repo.FindByBatchNo(ctx, batchNo)
	if err != nil {
		return nil, err
	}
	if flock == nil {
		return nil, domain.ErrNotFound
	}
	return flock, nil
}

func (s *Service) List(ctx context.Context, ownerID snowflake.ID) ([]*domain.Flock, error) {
	return s.repo.List(ctx, ownerID)
}

// UpdatePrice edits the per-chick price while the batch is active.
func (s *Service) UpdatePrice(ctx context.Context, batchNo string, pricePerChick float64) (*domain.Flock, error) {
	if pricePerChick < 0 {
		return nil, domain.ErrInvalidPrice
	}
	flock, err := s.Get(ctx, batchNo)
	if err != nil {
		return nil, err
	}
	if !flock.IsActive() {
		return nil, domain.ErrBatchInactive
	}
	flock.PricePerChick = pricePerChick
	flock.UpdatedAt = s.clock.Now().UTC()
	if err := s.repo.Update(ctx, flock); err != nil {
		return nil, err
	}
	return flock, nil
}

func (s *Service) UpdateRemarks(ctx context.Context, batchNo, remarks string) (*domain.Flock, error) {
	flock, err := s.Get(ctx, batchNo)
	if err != nil {
		return nil, err
	}
	if !flock.IsActive() {
		return nil, domain.ErrBatchInactive
	}
	flock.Remarks = remarks
	flock.UpdatedAt = s.clock.Now().UTC()
	if err := s.repo.Update(ctx, flock); err != nil {
		return nil, err
	}
	return flock, nil
}

// Close transitions the batch to closed. Allowed only once the latest
// recorded age has reached MinCloseAge; the report-trust gate is a separate
// concern and does not participate here.
func (s *Service) Close(ctx context.Context, req domain.CloseRequest) (*domain.Flock, error) {
	flock, err := s.Get(ctx, req.BatchNo)
	if err != nil {
		return nil, err
	}
	if !flock.IsActive() {
		return nil, domain.ErrAlreadyClosed
	}

	latest, err := s.monitoringRepo.FindLatest(ctx, flock.BatchNo)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, domain.ErrNoMonitoringRecord
	}
	if latest.Age < domain.MinCloseAge {
		return nil, &domain.CloseGateError{LatestAge: latest.Age}
	}

	now := s.clock.Now().UTC()
	flock.Status = domain.FlockStatusClosed
	flock.ClosedAt = &now
	if req.Remarks != "" {
		flock.Remarks = req.Remarks
	}
	flock.UpdatedAt = now
	if err := s.repo.Update(ctx, flock); err != nil {
		return nil, err
	}

	s.log.Info("batch closed",
		zap.String("batch_no", flock.BatchNo),
		zap.Int("latest_age", latest.Age),
	)
	return flock, nil
}

// Reopen reactivates a closed batch when the owner has no other active one.
func (s *Service) Reopen(ctx context.Context, batchNo string) (*domain.Flock, error) {
	flock, err := s.Get(ctx, batchNo)
	if err != nil {
		return nil, err
	}
	if flock.Status != domain.FlockStatusClosed {
		return nil, domain.ErrNotClosed
	}

	active, err := s.repo.FindActiveByOwner(ctx, flock.OwnerID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, domain.ErrActiveBatchExists
	}

	flock.Status = domain.FlockStatusActive
	flock.ClosedAt = nil
	flock.UpdatedAt = s.clock.Now().UTC()
	if err := s.repo.Update(ctx, flock); err != nil {
		return nil, err
	}
	return flock, nil
}
