package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/poultrylabs/brooder/internal/batchlock"
	"github.com/poultrylabs/brooder/internal/clock"
	flockdomain "github.com/poultrylabs/brooder/internal/flock/domain"
	flockrepository "github.com/poultrylabs/brooder/internal/flock/repository"
	monitoringdomain "github.com/poultrylabs/brooder/internal/monitoring/domain"
	monitoringrepository "github.com/poultrylabs/brooder/internal/monitoring/repository"
	"github.com/poultrylabs/brooder/internal/sale/domain"
	"github.com/poultrylabs/brooder/internal/sale/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupSaleService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node, *flockdomain.Flock) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(
		&flockdomain.Flock{},
		&monitoringdomain.DailyMonitoringRecord{},
		&domain.SaleRecord{},
	))

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC))

	svc := NewService(Params{
		Log:            zap.NewNop(),
		GenID:          node,
		Clock:          fake,
		Locker:         batchlock.NewLocker(),
		Repo:           repository.Provide(db),
		FlockRepo:      flockrepository.Provide(db),
		MonitoringRepo: monitoringrepository.Provide(db),
	})

	flock := &flockdomain.Flock{
		ID:          node.Generate(),
		OwnerID:     node.Generate(),
		BatchNo:     "BATCH-20240101-0000AA",
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		TotalChicks: 3000,
		Status:      flockdomain.FlockStatusActive,
	}
	assert.NoError(t, db.Create(flock).Error)

	return svc, db, node, flock
}

func seedMortality(t *testing.T, db *gorm.DB, node *snowflake.Node, flock *flockdomain.Flock, mortality int) {
	t.Helper()
	err := db.Create(&monitoringdomain.DailyMonitoringRecord{
		ID:        node.Generate(),
		BatchID:   flock.ID,
		BatchNo:   flock.BatchNo,
		Date:      flock.StartDate,
		Age:       0,
		Mortality: mortality,
	}).Error
	assert.NoError(t, err)
}

func TestRemainingReconcilesLedgers(t *testing.T) {
	svc, db, node, flock := setupSaleService(t)
	ctx := context.Background()
	seedMortality(t, db, node, flock, 120)

	_, err := svc.RecordSale(ctx, domain.RecordSaleRequest{
		BatchNo:       flock.BatchNo,
		Date:          time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		VehicleNo:     "KA-01-1234",
		Cages:         40,
		Birds:         800,
		EmptyWeightKg: 1200,
		LoadWeightKg:  2800,
	})
	assert.NoError(t, err)

	summary, err := svc.Remaining(ctx, flock.BatchNo)
	assert.NoError(t, err)
	assert.Equal(t, 3000, summary.Housed)
	assert.Equal(t, 120, summary.TotalMortality)
	assert.Equal(t, 800, summary.TotalSold)
	assert.Equal(t, 2080, summary.Remaining)
}

func TestRecordSaleComputesDispatchWeight(t *testing.T) {
	svc, _, _, flock := setupSaleService(t)
	ctx := context.Background()

	sale, err := svc.RecordSale(ctx, domain.RecordSaleRequest{
		BatchNo:       flock.BatchNo,
		Date:          time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		Birds:         500,
		EmptyWeightKg: 1000.1234,
		LoadWeightKg:  2000.5678,
	})
	assert.NoError(t, err)
	assert.Equal(t, 1000.444, sale.TotalWeightKg)
}

func TestRecordSaleRejectsNonPositiveWeight(t *testing.T) {
	svc, _, _, flock := setupSaleService(t)
	ctx := context.Background()

	_, err := svc.RecordSale(ctx, domain.RecordSaleRequest{
		BatchNo:       flock.BatchNo,
		Date:          time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		Birds:         500,
		EmptyWeightKg: 2000,
		LoadWeightKg:  2000,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidWeight)

	_, err = svc.RecordSale(ctx, domain.RecordSaleRequest{
		BatchNo:       flock.BatchNo,
		Date:          time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		Birds:         500,
		EmptyWeightKg: 2500,
		LoadWeightKg:  2000,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidWeight)
}

func TestRecordSaleRejectsOverselling(t *testing.T) {
	svc, db, node, flock := setupSaleService(t)
	ctx := context.Background()
	seedMortality(t, db, node, flock, 100)

	_, err := svc.RecordSale(ctx, domain.RecordSaleRequest{
		BatchNo:       flock.BatchNo,
		Date:          time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		Birds:         2901,
		EmptyWeightKg: 1000,
		LoadWeightKg:  7000,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientBirds)

	var birdsErr *domain.InsufficientBirdsError
	assert.ErrorAs(t, err, &birdsErr)
	assert.Equal(t, 2900, birdsErr.Remaining)
	assert.Equal(t, 2901, birdsErr.Requested)
}

func TestRecordSaleValidation(t *testing.T) {
	svc, _, _, flock := setupSaleService(t)
	ctx := context.Background()

	base := domain.RecordSaleRequest{
		BatchNo:       flock.BatchNo,
		Date:          time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		Birds:         100,
		EmptyWeightKg: 1000,
		LoadWeightKg:  1200,
	}

	req := base
	req.Birds = 0
	_, err := svc.RecordSale(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = base
	req.Cages = -1
	_, err = svc.RecordSale(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req = base
	req.Date = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.RecordSale(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	req = base
	req.Date = time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC)
	_, err = svc.RecordSale(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestRecordSaleRejectsClosedBatch(t *testing.T) {
	svc, db, _, flock := setupSaleService(t)
	ctx := context.Background()

	assert.NoError(t, db.Model(&flockdomain.Flock{}).
		Where("id = ?", flock.ID).
		Update("status", flockdomain.FlockStatusClosed).Error)

	_, err := svc.RecordSale(ctx, domain.RecordSaleRequest{
		BatchNo:       flock.BatchNo,
		Date:          time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		Birds:         100,
		EmptyWeightKg: 1000,
		LoadWeightKg:  1200,
	})
	assert.ErrorIs(t, err, flockdomain.ErrBatchInactive)
}

func TestUpdateSaleAddsPreviousBirdsBack(t *testing.T) {
	svc, db, node, flock := setupSaleService(t)
	ctx := context.Background()
	seedMortality(t, db, node, flock, 0)

	sale, err := svc.RecordSale(ctx, domain.RecordSaleRequest{
		BatchNo:       flock.BatchNo,
		Date:          time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		Birds:         2900,
		EmptyWeightKg: 1000,
		LoadWeightKg:  7000,
	})
	assert.NoError(t, err)

	// Only 100 birds are left, but growing this sale to 3000 is still valid
	// because its own 2900 are returned to the pool first.
	birds := 3000
	updated, err := svc.UpdateSale(ctx, domain.UpdateSaleRequest{ID: sale.ID, Birds: &birds})
	assert.NoError(t, err)
	assert.Equal(t, 3000, updated.Birds)

	birds = 3001
	_, err = svc.UpdateSale(ctx, domain.UpdateSaleRequest{ID: sale.ID, Birds: &birds})
	assert.ErrorIs(t, err, domain.ErrInsufficientBirds)
}

func TestUpdateSaleRecomputesWeight(t *testing.T) {
	svc, _, _, flock := setupSaleService(t)
	ctx := context.Background()

	sale, err := svc.RecordSale(ctx, domain.RecordSaleRequest{
		BatchNo:       flock.BatchNo,
		Date:          time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		Birds:         500,
		EmptyWeightKg: 1000,
		LoadWeightKg:  2000,
	})
	assert.NoError(t, err)

	load := 2500.0
	updated, err := svc.UpdateSale(ctx, domain.UpdateSaleRequest{ID: sale.ID, LoadWeightKg: &load})
	assert.NoError(t, err)
	assert.Equal(t, 1500.0, updated.TotalWeightKg)

	load = 900.0
	_, err = svc.UpdateSale(ctx, domain.UpdateSaleRequest{ID: sale.ID, LoadWeightKg: &load})
	assert.ErrorIs(t, err, domain.ErrInvalidWeight)
}

func TestListNewestFirst(t *testing.T) {
	svc, _, _, flock := setupSaleService(t)
	ctx := context.Background()

	_, err := svc.RecordSale(ctx, domain.RecordSaleRequest{
		BatchNo:       flock.BatchNo,
		Date:          time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
		Birds:         100,
		EmptyWeightKg: 1000,
		LoadWeightKg:  1200,
	})
	assert.NoError(t, err)

	_, err = svc.RecordSale(ctx, domain.RecordSaleRequest{
		BatchNo:       flock.BatchNo,
		Date:          time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC),
		Birds:         100,
		EmptyWeightKg: 1000,
		LoadWeightKg:  1250,
	})
	assert.NoError(t, err)

	sales, err := svc.List(ctx, flock.BatchNo)
	assert.NoError(t, err)
	assert.Len(t, sales, 2)
	assert.True(t, sales[0].Date.After(sales[1].Date))
}
