package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Flock, error)
	Get(ctx context.Context, batchNo string) (*Flock, error)
	List(ctx context.Context, ownerID snowflake.ID) ([]*Flock, error)
	UpdatePrice(ctx context.Context, batchNo string, pricePerChick float64) (*Flock, error)
	UpdateRemarks(ctx context.Context, batchNo, remarks string) (*Flock, error)
	Close(ctx context.Context, req CloseRequest) (*Flock, error)
	Reopen(ctx context.Context, batchNo string) (*Flock, error)
}

type CreateRequest struct {
	OwnerID       snowflake.ID
	StartDate     time.Time
	TotalChicks   int
	PricePerChick float64
	Remarks       string
}

type CloseRequest struct {
	BatchNo string
	Remarks string
}
