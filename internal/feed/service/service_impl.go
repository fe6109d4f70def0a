package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/poultrylabs/brooder/internal/batchlock"
	"github.com/poultrylabs/brooder/internal/clock"
	"github.com/poultrylabs/brooder/internal/dateutil"
	"github.com/poultrylabs/brooder/internal/feed/domain"
	flockdomain "github.com/poultrylabs/brooder/internal/flock/domain"
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
	ObsMetrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	locker     *batchlock.Locker
	repo       domain.Repository
	flockRepo  flockdomain.Repository
	obsMetrics *obsmetrics.Metrics
}

func NewService(p Params) domain.Service {
	return &Service{
		log:        p.Log.Named("feed.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		locker:     p.Locker,
		repo:       p.Repo,
		flockRepo:  p.FlockRepo,
		obsMetrics: p.ObsMetrics,
	}
}

// RecordIn appends a feed purchase. Inflows need no balance check.
func (s *Service) RecordIn(ctx context.Context, req domain.RecordInRequest) (*domain.FeedTransaction, error) {
	feedType, feedTypeKey, err := s.validateCommon(req.FeedType, req.Bags, req.KgPerBag, req.UnitPrice)
	if err != nil {
		return nil, err
	}
	date, err := s.validateDate(req.Date)
	if err != nil {
		return nil, err
	}
	flock, err := s.resolveFlock(ctx, req.BatchNo)
	if err != nil {
		return nil, err
	}

	kgIn := round.Kg(req.Bags * req.KgPerBag)
	now := s.clock.Now().UTC()
	txn := &domain.FeedTransaction{
		ID:          s.genID.Generate(),
		BatchID:     flock.ID,
		BatchNo:     flock.BatchNo,
		FeedType:    feedType,
		FeedTypeKey: feedTypeKey,
		Date:        date,
		BagsIn:      req.Bags,
		KgPerBag:    req.KgPerBag,
		KgIn:        kgIn,
		UnitPrice:   req.UnitPrice,
		TotalCost:   round.Money(kgIn * req.UnitPrice),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, txn); err != nil {
		return nil, err
	}
	s.obsMetrics.RecordFeedPosting(ctx, "in")
	return txn, nil
}

// RecordOut appends a manual withdrawal. Fails when the requested mass
// exceeds the batch balance beyond the epsilon tolerance. Check-then-append
// runs under the batch lock.
func (s *Service) RecordOut(ctx context.Context, req domain.RecordOutRequest) (*domain.FeedTransaction, error) {
	feedType, feedTypeKey, err := s.validateCommon(req.FeedType, req.Bags, req.KgPerBag, req.UnitPrice)
	if err != nil {
		return nil, err
	}
	date, err := s.validateDate(req.Date)
	if err != nil {
		return nil, err
	}
	flock, err := s.resolveFlock(ctx, req.BatchNo)
	if err != nil {
		return nil, err
	}

	kgOut := round.Kg(req.Bags * req.KgPerBag)

	release := s.locker.Acquire(flock.BatchNo)
	defer release()

	inKg, outKg, err := s.repo.Totals(ctx, flock.BatchNo)
	if err != nil {
		return nil, err
	}
	available := inKg - outKg
	if kgOut > available+domain.BalanceEpsilon {
		return nil, &domain.InsufficientStockError{AvailableKg: available, RequestedKg: kgOut}
	}

	now := s.clock.Now().UTC()
	txn := &domain.FeedTransaction{
		ID:          s.genID.Generate(),
		BatchID:     flock.ID,
		BatchNo:     flock.BatchNo,
		FeedType:    feedType,
		FeedTypeKey: feedTypeKey,
		Date:        date,
		BagsOut:     req.Bags,
		KgPerBag:    req.KgPerBag,
		KgOut:       kgOut,
		UnitPrice:   req.UnitPrice,
		TotalCost:   round.Money(kgOut * req.UnitPrice),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, txn); err != nil {
		return nil, err
	}
	s.obsMetrics.RecordFeedPosting(ctx, "out")
	return txn, nil
}

func (s *Service) Balance(ctx context.Context, batchNo string) (float64, error) {
	inKg, outKg, err := s.repo.Totals(ctx, batchNo)
	if err != nil {
		return 0, err
	}
	return inKg - outKg, nil
}

func (s *Service) List(ctx context.Context, batchNo string) ([]*domain.FeedTransaction, error) {
	return s.repo.ListByBatch(ctx, batchNo)
}

// Update edits a manual posting. Mass and cost are recomputed with the same
// rounding rules, and the balance invariant is re-validated net of the value
// being replaced.
func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.FeedTransaction, error) {
	txn, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, domain.ErrNotFound
	}
	if txn.IsDailyUsage() {
		return nil, domain.ErrDailyUsageEntry
	}

	release := s.locker.Acquire(txn.BatchNo)
	defer release()

	if req.FeedType != nil {
		feedType := strings.TrimSpace(*req.FeedType)
		if feedType == "" {
			return nil, domain.ErrInvalidFeedType
		}
		txn.FeedType = feedType
		txn.FeedTypeKey = strings.ToLower(feedType)
	}
	if req.Date != nil {
		date, err := s.validateDate(*req.Date)
		if err != nil {
			return nil, err
		}
		txn.Date = date
	}
	if req.Bags != nil {
		if *req.Bags <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if txn.BagsIn > 0 {
			txn.BagsIn = *req.Bags
		} else {
			txn.BagsOut = *req.Bags
		}
	}
	if req.KgPerBag != nil {
		if *req.KgPerBag <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		txn.KgPerBag = *req.KgPerBag
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice <= 0 {
			return nil, domain.ErrInvalidUnitPrice
		}
		txn.UnitPrice = *req.UnitPrice
	}

	oldKgIn, oldKgOut := txn.KgIn, txn.KgOut
	if txn.BagsIn > 0 {
		txn.KgIn = round.Kg(txn.BagsIn * txn.KgPerBag)
		txn.TotalCost = round.Money(txn.KgIn * txn.UnitPrice)
	} else {
		txn.KgOut = round.Kg(txn.BagsOut * txn.KgPerBag)
		txn.TotalCost = round.Money(txn.KgOut * txn.UnitPrice)
	}

	inKg, outKg, err := s.repo.Totals(ctx, txn.BatchNo)
	if err != nil {
		return nil, err
	}
	inWithout := inKg - oldKgIn
	outWithout := outKg - oldKgOut
	if (inWithout+txn.KgIn)-(outWithout+txn.KgOut) < -domain.BalanceEpsilon {
		return nil, &domain.InsufficientStockError{
			AvailableKg: inWithout - outWithout,
			RequestedKg: txn.KgOut,
		}
	}

	txn.UpdatedAt = s.clock.Now().UTC()
	if err := s.repo.Update(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// UpsertDailyUsage writes or replaces the withdrawal linked to a monitoring
// record. The availability check adds the record's previous consumption back
// so edits do not double-count. Caller holds the batch lock.
func (s *Service) UpsertDailyUsage(ctx context.Context, req domain.DailyUsageRequest) (*domain.FeedTransaction, error) {
	kgOut := round.Kg(req.Bags * req.KgPerBag)
	if kgOut <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	flock, err := s.resolveFlock(ctx, req.BatchNo)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByDailyRecord(ctx, req.DailyRecordID)
	if err != nil {
		return nil, err
	}

	inKg, outKg, err := s.repo.Totals(ctx, flock.BatchNo)
	if err != nil {
		return nil, err
	}
	available := inKg - outKg
	if existing != nil {
		available += existing.KgOut
	}
	if kgOut > available+domain.BalanceEpsilon {
		return nil, &domain.InsufficientStockError{AvailableKg: available, RequestedKg: kgOut}
	}

	now := s.clock.Now().UTC()
	if existing != nil {
		existing.Date = dateutil.Normalize(req.Date)
		existing.BagsOut = req.Bags
		existing.KgPerBag = req.KgPerBag
		existing.KgOut = kgOut
		existing.UpdatedAt = now
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	dailyRecordID := req.DailyRecordID
	txn := &domain.FeedTransaction{
		ID:            s.genID.Generate(),
		BatchID:       flock.ID,
		BatchNo:       flock.BatchNo,
		FeedType:      domain.DailyUsageType,
		FeedTypeKey:   domain.DailyUsageTypeKey,
		Date:          dateutil.Normalize(req.Date),
		BagsOut:       req.Bags,
		KgPerBag:      req.KgPerBag,
		KgOut:         kgOut,
		DailyRecordID: &dailyRecordID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Insert(ctx, txn); err != nil {
		return nil, err
	}
	s.obsMetrics.RecordFeedPosting(ctx, "daily_usage")
	return txn, nil
}

// RemoveDailyUsage deletes the linked withdrawal, if any. Caller holds the
// batch lock.
func (s *Service) RemoveDailyUsage(ctx context.Context, dailyRecordID snowflake.ID) error {
	existing, err := s.repo.FindByDailyRecord(ctx, dailyRecordID)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}
	return s.repo.Delete(ctx, existing.ID)
}

func (s *Service) validateCommon(feedType string, bags, kgPerBag, unitPrice float64) (string, string, error) {
	trimmed := strings.TrimSpace(feedType)
	if trimmed == "" {
		return "", "", domain.ErrInvalidFeedType
	}
	if bags <= 0 || kgPerBag <= 0 {
		return "", "", domain.ErrInvalidQuantity
	}
	if unitPrice <= 0 {
		return "", "", domain.ErrInvalidUnitPrice
	}
	return trimmed, strings.ToLower(trimmed), nil
}

func (s *Service) validateDate(date time.Time) (time.Time, error) {
	if date.IsZero() {
		return time.Time{}, domain.ErrInvalidDate
	}
	normalized := dateutil.Normalize(date)
	if normalized.After(dateutil.Normalize(s.clock.Now())) {
		return time.Time{}, domain.ErrInvalidDate
	}
	return normalized, nil
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
