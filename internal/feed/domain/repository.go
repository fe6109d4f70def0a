package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Insert(ctx context.Context, txn *FeedTransaction) error
	FindByID(ctx context.Context, id snowflake.ID) (*FeedTransaction, error)
	FindByDailyRecord(ctx context.Context, dailyRecordID snowflake.ID) (*FeedTransaction, error)
	// ListByBatch returns all postings for a batch, newest first.
	ListByBatch(ctx context.Context, batchNo string) ([]*FeedTransaction, error)
	// Totals returns cumulative kg-in and kg-out across the batch ledger.
	Totals(ctx context.Context, batchNo string) (inKg, outKg float64, err error)
	Update(ctx context.Context, txn *FeedTransaction) error
	Delete(ctx context.Context, id snowflake.ID) error
}
