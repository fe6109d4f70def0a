package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/poultrylabs/brooder/internal/batchlock"
	"github.com/poultrylabs/brooder/internal/clock"
	"github.com/poultrylabs/brooder/internal/dateutil"
	flockdomain "github.com/poultrylabs/brooder/internal/flock/domain"
	monitoringdomain "github.com/poultrylabs/brooder/internal/monitoring/domain"
	obsmetrics "github.com/poultrylabs/brooder/internal/observability/metrics"
	"github.com/poultrylabs/brooder/internal/round"
	"github.com/poultrylabs/brooder/internal/sale/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log            *zap.Logger
	GenID          *snowflake.Node
	Clock          clock.Clock
	Locker         *batchlock.Locker
	Repo           domain.Repository
	FlockRepo      flockdomain.Repository
	MonitoringRepo monitoringdomain.Repository
	ObsMetrics     *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	log            *zap.Logger
	genID          *snowflake.Node
	clock          clock.Clock
	locker         *batchlock.Locker
	repo           domain.Repository
	flockRepo      flockdomain.Repository
	monitoringRepo monitoringdomain.Repository
	obsMetrics     *obsmetrics.Metrics
}

func NewService(p Params) domain.Service {
	return &Service{
		log:            p.Log.Named("sale.service"),
		genID:          p.GenID,
		clock:          p.Clock,
		locker:         p.Locker,
		repo:           p.Repo,
		flockRepo:      p.FlockRepo,
		monitoringRepo: p.MonitoringRepo,
		obsMetrics:     p.ObsMetrics,
	}
}

func (s *Service) Remaining(ctx context.Context, batchNo string) (*domain.RemainingSummary, error) {
	flock, err := s.resolveFlock(ctx, batchNo)
	if err != nil {
		return nil, err
	}
	return s.remaining(ctx, flock)
}

func (s *Service) remaining(ctx context.Context, flock *flockdomain.Flock) (*domain.RemainingSummary, error) {
	mortality, err := s.monitoringRepo.SumMortality(ctx, flock.BatchNo)
	if err != nil {
		return nil, err
	}
	sold, err := s.repo.SumBirds(ctx, flock.BatchNo)
	if err != nil {
		return nil, err
	}
	remaining := flock.TotalChicks - mortality - sold
	if remaining < 0 {
		remaining = 0
	}
	return &domain.RemainingSummary{
		Housed:         flock.TotalChicks,
		TotalMortality: mortality,
		TotalSold:      sold,
		Remaining:      remaining,
	}, nil
}

func (s *Service) RecordSale(ctx context.Context, req domain.RecordSaleRequest) (*domain.SaleRecord, error) {
	flock, err := s.resolveFlock(ctx, req.BatchNo)
	if err != nil {
		return nil, err
	}
	if !flock.IsActive() {
		return nil, flockdomain.ErrBatchInactive
	}
	if req.Cages < 0 || req.Birds <= 0 {
		return nil, domain.ErrInvalidInput
	}
	date, err := s.validateDate(req.Date, flock.StartDate)
	if err != nil {
		return nil, err
	}
	total := round.Kg(req.LoadWeightKg - req.EmptyWeightKg)
	if req.EmptyWeightKg < 0 || req.LoadWeightKg < 0 || total <= 0 {
		return nil, domain.ErrInvalidWeight
	}

	release := s.locker.Acquire(flock.BatchNo)
	defer release()

	summary, err := s.remaining(ctx, flock)
	if err != nil {
		return nil, err
	}
	if req.Birds > summary.Remaining {
		return nil, &domain.InsufficientBirdsError{Remaining: summary.Remaining, Requested: req.Birds}
	}

	sale := &domain.SaleRecord{
		ID:            s.genID.Generate(),
		BatchID:       flock.ID,
		BatchNo:       flock.BatchNo,
		Date:          date,
		VehicleNo:     req.VehicleNo,
		Cages:         req.Cages,
		Birds:         req.Birds,
		EmptyWeightKg: round.Kg(req.EmptyWeightKg),
		LoadWeightKg:  round.Kg(req.LoadWeightKg),
		TotalWeightKg: total,
		Remarks:       req.Remarks,
	}
	if err := s.repo.Insert(ctx, sale); err != nil {
		return nil, err
	}
	s.obsMetrics.RecordSale(ctx)
	s.log.Info("sale recorded",
		zap.String("batch_no", sale.BatchNo),
		zap.Int("birds", sale.Birds),
		zap.Float64("total_weight_kg", sale.TotalWeightKg),
	)
	return sale, nil
}

// UpdateSale re-validates the bird count against the remaining pool with the
// record's previous count added back, so shrinking or growing a sale is
// judged against the same inventory the original entry drew from.
func (s *Service) UpdateSale(ctx context.Context, req domain.UpdateSaleRequest) (*domain.SaleRecord, error) {
	sale, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	flock, err := s.resolveFlock(ctx, sale.BatchNo)
	if err != nil {
		return nil, err
	}

	release := s.locker.Acquire(flock.BatchNo)
	defer release()

	previousBirds := sale.Birds
	if req.Date != nil {
		date, err := s.validateDate(*req.Date, flock.StartDate)
		if err != nil {
			return nil, err
		}
		sale.Date = date
	}
	if req.VehicleNo != nil {
		sale.VehicleNo = *req.VehicleNo
	}
	if req.Cages != nil {
		if *req.Cages < 0 {
			return nil, domain.ErrInvalidInput
		}
		sale.Cages = *req.Cages
	}
	if req.Birds != nil {
		if *req.Birds <= 0 {
			return nil, domain.ErrInvalidInput
		}
		sale.Birds = *req.Birds
	}
	if req.EmptyWeightKg != nil {
		sale.EmptyWeightKg = round.Kg(*req.EmptyWeightKg)
	}
	if req.LoadWeightKg != nil {
		sale.LoadWeightKg = round.Kg(*req.LoadWeightKg)
	}
	if req.EmptyWeightKg != nil || req.LoadWeightKg != nil {
		total := round.Kg(sale.LoadWeightKg - sale.EmptyWeightKg)
		if sale.EmptyWeightKg < 0 || sale.LoadWeightKg < 0 || total <= 0 {
			return nil, domain.ErrInvalidWeight
		}
		sale.TotalWeightKg = total
	}

	if sale.Birds != previousBirds {
		summary, err := s.remaining(ctx, flock)
		if err != nil {
			return nil, err
		}
		available := summary.Remaining + previousBirds
		if sale.Birds > available {
			return nil, &domain.InsufficientBirdsError{Remaining: available, Requested: sale.Birds}
		}
	}

	if err := s.repo.Update(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *Service) List(ctx context.Context, batchNo string) ([]*domain.SaleRecord, error) {
	if _, err := s.resolveFlock(ctx, batchNo); err != nil {
		return nil, err
	}
	return s.repo.ListByBatch(ctx, batchNo)
}

func (s *Service) resolveFlock(ctx context.Context, batchNo string) (*flockdomain.Flock, error) {
	flock, err := s.flockRepo.FindByBatchNo(ctx, batchNo)
	if err != nil {
		return nil, err
	}
	if flock == nil {
		return nil, flockdomain.ErrNotFound
	}
	return flock, nil
}

func (s *Service) validateDate(raw time.Time, startDate time.Time) (time.Time, error) {
	if raw.IsZero() {
		return time.Time{}, domain.ErrInvalidDate
	}
	date := dateutil.Normalize(raw)
	today := dateutil.Normalize(s.clock.Now())
	if date.After(today) || date.Before(dateutil.Normalize(startDate)) {
		return time.Time{}, domain.ErrInvalidDate
	}
	return date, nil
}
