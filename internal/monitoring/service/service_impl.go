package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/poultrylabs/brooder/internal/batchlock"
	"github.com/poultrylabs/brooder/internal/clock"
	"github.com/poultrylabs/brooder/internal/dateutil"
	feeddomain "github.com/poultrylabs/brooder/internal/feed/domain"
	flockdomain "github.com/poultrylabs/brooder/internal/flock/domain"
	"github.com/poultrylabs/brooder/internal/monitoring/domain"
	obsmetrics "github.com/poultrylabs/brooder/internal/observability/metrics"
	"github.com/poultrylabs/brooder/internal/round"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Locker     *batchlock.Locker
	Repo       domain.Repository
	FlockRepo  flockdomain.Repository
	FeedSvc    feeddomain.Service
	ObsMetrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	locker     *batchlock.Locker
	repo       domain.Repository
	flockRepo  flockdomain.Repository
	feedSvc    feeddomain.Service
	obsMetrics *obsmetrics.Metrics
}

func NewService(p Params) domain.Service {
	return &Service{
		log:        p.Log.Named("monitoring.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		locker:     p.Locker,
		repo:       p.Repo,
		flockRepo:  p.FlockRepo,
		feedSvc:    p.FeedSvc,
		obsMetrics: p.ObsMetrics,
	}
}

func (s *Service) NextRequiredDate(ctx context.Context, batchNo string) (time.Time, error) {
	flock, err := s.resolveFlock(ctx, batchNo)
	if err != nil {
		return time.Time{}, err
	}
	dates, err := s.repo.ListDates(ctx, batchNo)
	if err != nil {
		return time.Time{}, err
	}
	return domain.NextRequiredDate(flock.StartDate, dates), nil
}

// CreateRecord accepts one record for the batch's next required date and,
// when the day consumed feed, posts the linked ledger withdrawal. The two
// writes form a saga: if the ledger posting fails the monitoring record is
// deleted again and the ledger error is returned.
func (s *Service) CreateRecord(ctx context.Context, req domain.CreateRecordRequest) (*domain.DailyMonitoringRecord, error) {
	flock, err := s.resolveFlock(ctx, req.BatchNo)
	if err != nil {
		return nil, err
	}
	if !flock.IsActive() {
		return nil, flockdomain.ErrBatchInactive
	}
	if req.Mortality < 0 || req.FeedBags < 0 || req.KgPerBag < 0 || req.AvgWeight < 0 {
		return nil, domain.ErrInvalidInput
	}

	if req.Date.IsZero() {
		return nil, domain.ErrInvalidDate
	}
	date := dateutil.Normalize(req.Date)
	today := dateutil.Normalize(s.clock.Now())
	if date.After(today) || date.Before(dateutil.Normalize(flock.StartDate)) {
		return nil, domain.ErrInvalidDate
	}

	release := s.locker.Acquire(flock.BatchNo)
	defer release()

	dates, err := s.repo.ListDates(ctx, flock.BatchNo)
	if err != nil {
		return nil, err
	}
	next := domain.NextRequiredDate(flock.StartDate, dates)
	if !date.Equal(next) {
		return nil, &domain.OutOfSequenceError{NextRequiredDate: next}
	}

	age := dateutil.DaysBetween(flock.StartDate, date)
	if age < 0 || age > domain.MaxAge {
		return nil, &domain.AgeOutOfRangeError{Age: age}
	}

	feedKg := round.Kg(req.FeedBags * req.KgPerBag)
	if feedKg > 0 {
		balance, err := s.feedSvc.Balance(ctx, flock.BatchNo)
		if err != nil {
			return nil, err
		}
		if feedKg > balance+feeddomain.BalanceEpsilon {
			return nil, &feeddomain.InsufficientStockError{AvailableKg: balance, RequestedKg: feedKg}
		}
	}

	now := s.clock.Now().UTC()
	rec := &domain.DailyMonitoringRecord{
		ID:        s.genID.Generate(),
		BatchID:   flock.ID,
		BatchNo:   flock.BatchNo,
		Date:      date,
		Age:       age,
		Mortality: req.Mortality,
		FeedBags:  req.FeedBags,
		KgPerBag:  req.KgPerBag,
		FeedKg:    feedKg,
		AvgWeight: req.AvgWeight,
		Remarks:   req.Remarks,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, err
	}

	if feedKg > 0 {
		_, err := s.feedSvc.UpsertDailyUsage(ctx, feeddomain.DailyUsageRequest{
			BatchNo:       flock.BatchNo,
			Date:          date,
			Bags:          req.FeedBags,
			KgPerBag:      req.KgPerBag,
			DailyRecordID: rec.ID,
		})
		if err != nil {
			if delErr := s.repo.Delete(ctx, rec.ID); delErr != nil {
				s.obsMetrics.RecordSagaRollback(ctx, "failed")
				s.log.Error("linked feed write failed and rollback failed",
					zap.String("batch_no", flock.BatchNo),
					zap.String("record_id", rec.ID.String()),
					zap.NamedError("cause", err),
					zap.NamedError("rollback", delErr),
				)
				return nil, &domain.CompensationError{RecordID: rec.ID.String(), Cause: err, Rollback: delErr}
			}
			s.obsMetrics.RecordSagaRollback(ctx, "rolled_back")
			s.log.Warn("linked feed write failed, monitoring record rolled back",
				zap.String("batch_no", flock.BatchNo),
				zap.Error(err),
			)
			return nil, err
		}
	}

	s.obsMetrics.RecordMonitoringRecord(ctx)
	return rec, nil
}

// UpdateRecord edits a record's numeric fields in place. A feed change
// re-validates availability with the record's previous consumption added
// back, then upserts or removes the linked withdrawal. If the ledger side
// fails, the record's pre-edit snapshot is restored.
func (s *Service) UpdateRecord(ctx context.Context, req domain.UpdateRecordRequest) (*domain.DailyMonitoringRecord, error) {
	rec, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	flock, err := s.resolveFlock(ctx, rec.BatchNo)
	if err != nil {
		return nil, err
	}
	if !flock.IsActive() {
		return nil, flockdomain.ErrBatchInactive
	}

	release := s.locker.Acquire(rec.BatchNo)
	defer release()

	snapshot := *rec

	if req.Mortality != nil {
		if *req.Mortality < 0 {
			return nil, domain.ErrInvalidInput
		}
		rec.Mortality = *req.Mortality
	}
	feedChanged := false
	if req.FeedBags != nil {
		if *req.FeedBags < 0 {
			return nil, domain.ErrInvalidInput
		}
		rec.FeedBags = *req.FeedBags
		feedChanged = true
	}
	if req.KgPerBag != nil {
		if *req.KgPerBag < 0 {
			return nil, domain.ErrInvalidInput
		}
		rec.KgPerBag = *req.KgPerBag
		feedChanged = true
	}
	if req.AvgWeight != nil {
		if *req.AvgWeight < 0 {
			return nil, domain.ErrInvalidInput
		}
		rec.AvgWeight = *req.AvgWeight
	}
	if req.Remarks != nil {
		rec.Remarks = *req.Remarks
	}

	if feedChanged {
		rec.FeedKg = round.Kg(rec.FeedBags * rec.KgPerBag)
	}
	rec.UpdatedAt = s.clock.Now().UTC()

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}

	if feedChanged {
		var ledgerErr error
		if rec.FeedKg > 0 {
			_, ledgerErr = s.feedSvc.UpsertDailyUsage(ctx, feeddomain.DailyUsageRequest{
				BatchNo:       rec.BatchNo,
				Date:          rec.Date,
				Bags:          rec.FeedBags,
				KgPerBag:      rec.KgPerBag,
				DailyRecordID: rec.ID,
			})
		} else {
			ledgerErr = s.feedSvc.RemoveDailyUsage(ctx, rec.ID)
		}
		if ledgerErr != nil {
			if restoreErr := s.repo.Update(ctx, &snapshot); restoreErr != nil {
				s.obsMetrics.RecordSagaRollback(ctx, "failed")
				s.log.Error("linked feed update failed and snapshot restore failed",
					zap.String("record_id", rec.ID.String()),
					zap.NamedError("cause", ledgerErr),
					zap.NamedError("rollback", restoreErr),
				)
				return nil, &domain.CompensationError{RecordID: rec.ID.String(), Cause: ledgerErr, Rollback: restoreErr}
			}
			s.obsMetrics.RecordSagaRollback(ctx, "rolled_back")
			return nil, ledgerErr
		}
	}

	return rec, nil
}

func (s *Service) List(ctx context.Context, batchNo string) ([]*domain.DailyMonitoringRecord, error) {
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
