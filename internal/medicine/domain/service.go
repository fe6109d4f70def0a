package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	RecordEntry(ctx context.Context, req RecordEntryRequest) (*MedicineEntry, error)
	UpdateEntry(ctx context.Context, req UpdateEntryRequest) (*MedicineEntry, error)
	List(ctx context.Context, batchNo string) ([]*MedicineEntry, error)
	// TotalCost sums TotalCost across every entry of the batch.
	TotalCost(ctx context.Context, batchNo string) (float64, error)
}

type RecordEntryRequest struct {
	BatchNo   string
	Date      time.Time
	Name      string
	Quantity  float64
	UnitPrice float64
	Dose      string
	Remarks   string
}

type UpdateEntryRequest struct {
	ID        snowflake.ID
	Date      *time.Time
	Name      *string
	Quantity  *float64
	UnitPrice *float64
	Dose      *string
	Remarks   *string
}
