package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Insert(ctx context.Context, rec *DailyMonitoringRecord) error
	FindByID(ctx context.Context, id snowflake.ID) (*DailyMonitoringRecord, error)
	// FindLatest returns the record with the greatest date, or nil.
	FindLatest(ctx context.Context, batchNo string) (*DailyMonitoringRecord, error)
	// ListByBatch returns all records for a batch, oldest first.
	ListByBatch(ctx context.Context, batchNo string) ([]*DailyMonitoringRecord, error)
	ListDates(ctx context.Context, batchNo string) ([]time.Time, error)
	SumMortality(ctx context.Context, batchNo string) (int, error)
	Update(ctx context.Context, rec *DailyMonitoringRecord) error
	Delete(ctx context.Context, id snowflake.ID) error
}
