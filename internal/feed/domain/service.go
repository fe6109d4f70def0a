package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	RecordIn(ctx context.Context, req RecordInRequest) (*FeedTransaction, error)
	RecordOut(ctx context.Context, req RecordOutRequest) (*FeedTransaction, error)
	// Balance is cumulative kg-in minus kg-out; feed types are fungible.
	Balance(ctx context.Context, batchNo string) (float64, error)
	Update(ctx context.Context, req UpdateRequest) (*FeedTransaction, error)
	List(ctx context.Context, batchNo string) ([]*FeedTransaction, error)

	// UpsertDailyUsage and RemoveDailyUsage maintain the withdrawal linked to
	// a daily monitoring record. Both assume the caller already holds the
	// batch lock; they are the second half of the recorder's linked-write
	// saga and must not re-acquire it.
	UpsertDailyUsage(ctx context.Context, req DailyUsageRequest) (*FeedTransaction, error)
	RemoveDailyUsage(ctx context.Context, dailyRecordID snowflake.ID) error
}

type RecordInRequest struct {
	BatchNo   string
	FeedType  string
	Date      time.Time
	Bags      float64
	KgPerBag  float64
	UnitPrice float64
}

type RecordOutRequest struct {
	BatchNo   string
	FeedType  string
	Date      time.Time
	Bags      float64
	KgPerBag  float64
	UnitPrice float64
}

type UpdateRequest struct {
	ID        snowflake.ID
	Bags      *float64
	KgPerBag  *float64
	UnitPrice *float64
	Date      *time.Time
	FeedType  *string
}

type DailyUsageRequest struct {
	BatchNo       string
	Date          time.Time
	Bags          float64
	KgPerBag      float64
	DailyRecordID snowflake.ID
}
