package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/poultrylabs/brooder/internal/clock"
	"github.com/poultrylabs/brooder/internal/dateutil"
	flockdomain "github.com/poultrylabs/brooder/internal/flock/domain"
	"github.com/poultrylabs/brooder/internal/medicine/domain"
	"github.com/poultrylabs/brooder/internal/round"
	"github.com/poultrylabs/brooder/pkg/db/option"
	"github.com/poultrylabs/brooder/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Store     repository.Repository[domain.MedicineEntry]
	FlockRepo flockdomain.Repository
}

type Service struct {
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	store     repository.Repository[domain.MedicineEntry]
	flockRepo flockdomain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		log:       p.Log.Named("medicine.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		store:     p.Store,
		flockRepo: p.FlockRepo,
	}
}

func (s *Service) RecordEntry(ctx context.Context, req domain.RecordEntryRequest) (*domain.MedicineEntry, error) {
	flock, err := s.resolveFlock(ctx, req.BatchNo)
	if err != nil {
		return nil, err
	}
	if !flock.IsActive() {
		return nil, flockdomain.ErrBatchInactive
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if req.UnitPrice <= 0 {
		return nil, domain.ErrInvalidUnitPrice
	}
	date, err := s.validateDate(req.Date, flock.StartDate)
	if err != nil {
		return nil, err
	}

	entry := &domain.MedicineEntry{
		ID:        s.genID.Generate(),
		BatchID:   flock.ID,
		BatchNo:   flock.BatchNo,
		Date:      date,
		Name:      name,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		TotalCost: round.Money(req.Quantity * req.UnitPrice),
		Dose:      req.Dose,
		Remarks:   req.Remarks,
	}
	if err := s.store.Create(ctx, entry); err != nil {
		return nil, err
	}
	s.log.Info("medicine entry recorded",
		zap.String("batch_no", entry.BatchNo),
		zap.String("name", entry.Name),
		zap.Float64("total_cost", entry.TotalCost),
	)
	return entry, nil
}

func (s *Service) UpdateEntry(ctx context.Context, req domain.UpdateEntryRequest) (*domain.MedicineEntry, error) {
	entry, err := s.store.FindOne(ctx, &domain.MedicineEntry{ID: req.ID})
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	flock, err := s.resolveFlock(ctx, entry.BatchNo)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := s.validateDate(*req.Date, flock.StartDate)
		if err != nil {
			return nil, err
		}
		entry.Date = date
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		entry.Name = name
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		entry.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice <= 0 {
			return nil, domain.ErrInvalidUnitPrice
		}
		entry.UnitPrice = *req.UnitPrice
	}
	if req.Dose != nil {
		entry.Dose = *req.Dose
	}
	if req.Remarks != nil {
		entry.Remarks = *req.Remarks
	}
	entry.TotalCost = round.Money(entry.Quantity * entry.UnitPrice)

	if err := s.store.Update(ctx, entry.ID.String(), entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) List(ctx context.Context, batchNo string) ([]*domain.MedicineEntry, error) {
	if _, err := s.resolveFlock(ctx, batchNo); err != nil {
		return nil, err
	}
	return s.store.Find(ctx, &domain.MedicineEntry{BatchNo: batchNo}, option.OrderBy("date desc, created_at desc"))
}

func (s *Service) TotalCost(ctx context.Context, batchNo string) (float64, error) {
	entries, err := s.store.Find(ctx, &domain.MedicineEntry{BatchNo: batchNo})
	if err != nil {
		return 0, err
	}
	var total float64
	for _, entry := range entries {
		total += entry.TotalCost
	}
	return round.Money(total), nil
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
