package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/poultrylabs/brooder/internal/clock"
	"github.com/poultrylabs/brooder/internal/flock/domain"
	"github.com/poultrylabs/brooder/internal/flock/repository"
	monitoringdomain "github.com/poultrylabs/brooder/internal/monitoring/domain"
	monitoringrepository "github.com/poultrylabs/brooder/internal/monitoring/repository"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupFlockService(t *testing.T) (domain.Service, *gorm.DB, *clock.FakeClock, *snowflake.Node) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&domain.Flock{}, &monitoringdomain.DailyMonitoringRecord{}))

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC))

	svc := NewService(Params{
		Log:            zap.NewNop(),
		GenID:          node,
		Clock:          fake,
		Repo:           repository.Provide(db),
		MonitoringRepo: monitoringrepository.Provide(db),
	})
	return svc, db, fake, node
}

func TestCreateMintsBatchNumber(t *testing.T) {
	svc, _, _, node := setupFlockService(t)
	ctx := context.Background()
	ownerID := node.Generate()

	flock, err := svc.Create(ctx, domain.CreateRequest{
		OwnerID:       ownerID,
		StartDate:     time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		TotalChicks:   3000,
		PricePerChick: 15,
	})
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(flock.BatchNo, "BATCH-20240101-"))
	assert.Len(t, flock.BatchNo, len("BATCH-20240101-")+6)
	assert.Equal(t, domain.FlockStatusActive, flock.Status)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), flock.StartDate)
}

func TestCreateRejectsSecondActiveBatch(t *testing.T) {
	svc, _, _, node := setupFlockService(t)
	ctx := context.Background()
	ownerID := node.Generate()

	_, err := svc.Create(ctx, domain.CreateRequest{
		OwnerID:     ownerID,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		TotalChicks: 3000,
	})
	assert.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateRequest{
		OwnerID:     ownerID,
		StartDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		TotalChicks: 2000,
	})
	assert.ErrorIs(t, err, domain.ErrActiveBatchExists)
}

func TestCreateValidation(t *testing.T) {
	svc, _, _, node := setupFlockService(t)
	ctx := context.Background()
	ownerID := node.Generate()

	_, err := svc.Create(ctx, domain.CreateRequest{
		OwnerID:     ownerID,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		TotalChicks: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidChickCount)

	_, err = svc.Create(ctx, domain.CreateRequest{
		OwnerID:     ownerID,
		StartDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		TotalChicks: 3000,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStartDate)
}

func seedMonitoringRecord(t *testing.T, db *gorm.DB, node *snowflake.Node, flock *domain.Flock, age int) {
	t.Helper()
	err := db.Create(&monitoringdomain.DailyMonitoringRecord{
		ID:      node.Generate(),
		BatchID: flock.ID,
		BatchNo: flock.BatchNo,
		Date:    flock.StartDate.AddDate(0, 0, age),
		Age:     age,
	}).Error
	assert.NoError(t, err)
}

func TestCloseRequiresMonitoringHistory(t *testing.T) {
	svc, _, _, node := setupFlockService(t)
	ctx := context.Background()

	flock, err := svc.Create(ctx, domain.CreateRequest{
		OwnerID:     node.Generate(),
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		TotalChicks: 3000,
	})
	assert.NoError(t, err)

	_, err = svc.Close(ctx, domain.CloseRequest{BatchNo: flock.BatchNo})
	assert.ErrorIs(t, err, domain.ErrNoMonitoringRecord)
}

func TestCloseGateBlocksYoungBatch(t *testing.T) {
	svc, db, _, node := setupFlockService(t)
	ctx := context.Background()

	flock, err := svc.Create(ctx, domain.CreateRequest{
		OwnerID:     node.Generate(),
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		TotalChicks: 3000,
	})
	assert.NoError(t, err)
	seedMonitoringRecord(t, db, node, flock, 39)

	_, err = svc.Close(ctx, domain.CloseRequest{BatchNo: flock.BatchNo})
	assert.ErrorIs(t, err, domain.ErrCloseGateNotMet)

	var gateErr *domain.CloseGateError
	assert.ErrorAs(t, err, &gateErr)
	assert.Equal(t, 39, gateErr.LatestAge)
}

func TestCloseAndReopenLifecycle(t *testing.T) {
	svc, db, _, node := setupFlockService(t)
	ctx := context.Background()

	flock, err := svc.Create(ctx, domain.CreateRequest{
		OwnerID:     node.Generate(),
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		TotalChicks: 3000,
	})
	assert.NoError(t, err)
	seedMonitoringRecord(t, db, node, flock, 40)

	closed, err := svc.Close(ctx, domain.CloseRequest{BatchNo: flock.BatchNo, Remarks: "done"})
	assert.NoError(t, err)
	assert.Equal(t, domain.FlockStatusClosed, closed.Status)
	assert.NotNil(t, closed.ClosedAt)
	assert.Equal(t, "done", closed.Remarks)

	_, err = svc.Close(ctx, domain.CloseRequest{BatchNo: flock.BatchNo})
	assert.ErrorIs(t, err, domain.ErrAlreadyClosed)

	_, err = svc.UpdatePrice(ctx, flock.BatchNo, 18)
	assert.ErrorIs(t, err, domain.ErrBatchInactive)

	reopened, err := svc.Reopen(ctx, flock.BatchNo)
	assert.NoError(t, err)
	assert.Equal(t, domain.FlockStatusActive, reopened.Status)
	assert.Nil(t, reopened.ClosedAt)
}

func TestReopenBlockedByOtherActiveBatch(t *testing.T) {
	svc, db, _, node := setupFlockService(t)
	ctx := context.Background()
	ownerID := node.Generate()

	first, err := svc.Create(ctx, domain.CreateRequest{
		OwnerID:     ownerID,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		TotalChicks: 3000,
	})
	assert.NoError(t, err)
	seedMonitoringRecord(t, db, node, first, 40)

	_, err = svc.Close(ctx, domain.CloseRequest{BatchNo: first.BatchNo})
	assert.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateRequest{
		OwnerID:     ownerID,
		StartDate:   time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		TotalChicks: 2500,
	})
	assert.NoError(t, err)

	_, err = svc.Reopen(ctx, first.BatchNo)
	assert.ErrorIs(t, err, domain.ErrActiveBatchExists)
}
