package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Insert(ctx context.Context, sale *SaleRecord) error
	FindByID(ctx context.Context, id snowflake.ID) (*SaleRecord, error)
	// ListByBatch returns all sales for a batch, newest first.
	ListByBatch(ctx context.Context, batchNo string) ([]*SaleRecord, error)
	SumBirds(ctx context.Context, batchNo string) (int, error)
	Update(ctx context.Context, sale *SaleRecord) error
}
