package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// Remaining is housed minus cumulative mortality minus birds already sold.
	Remaining(ctx context.Context, batchNo string) (*RemainingSummary, error)
	RecordSale(ctx context.Context, req RecordSaleRequest) (*SaleRecord, error)
	UpdateSale(ctx context.Context, req UpdateSaleRequest) (*SaleRecord, error)
	List(ctx context.Context, batchNo string) ([]*SaleRecord, error)
}

type RecordSaleRequest struct {
	BatchNo       string
	Date          time.Time
	VehicleNo     string
	Cages         int
	Birds         int
	EmptyWeightKg float64
	LoadWeightKg  float64
	Remarks       string
}

type UpdateSaleRequest struct {
	ID            snowflake.ID
	Date          *time.Time
	VehicleNo     *string
	Cages         *int
	Birds         *int
	EmptyWeightKg *float64
	LoadWeightKg  *float64
	Remarks       *string
}
