package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// NextRequiredDate is the only date CreateRecord accepts for the batch.
	NextRequiredDate(ctx context.Context, batchNo string) (time.Time, error)
	CreateRecord(ctx context.Context, req CreateRecordRequest) (*DailyMonitoringRecord, error)
	UpdateRecord(ctx context.Context, req UpdateRecordRequest) (*DailyMonitoringRecord, error)
	List(ctx context.Context, batchNo string) ([]*DailyMonitoringRecord, error)
}

type CreateRecordRequest struct {
	BatchNo   string
	Date      time.Time
	Mortality int
	FeedBags  float64
	KgPerBag  float64
	AvgWeight float64
	Remarks   string
}

type UpdateRecordRequest struct {
	ID        snowflake.ID
	Mortality *int
	FeedBags  *float64
	KgPerBag  *float64
	AvgWeight *float64
	Remarks   *string
}
