// Package domain contains the sale ledger model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// SaleRecord is one dispatch of birds out of a batch. The sold weight is the
// loaded vehicle weight minus its empty weight.
type SaleRecord struct {
	ID            snowflake.ID `gorm:"primaryKey"`
	BatchID       snowflake.ID `gorm:"not null;index"`
	BatchNo       string       `gorm:"type:text;not null;index"`
	Date          time.Time    `gorm:"not null"`
	VehicleNo     string       `gorm:"type:text"`
	Cages         int          `gorm:"not null;default:0"`
	Birds         int          `gorm:"not null"`
	EmptyWeightKg float64      `gorm:"not null;default:0"`
	LoadWeightKg  float64      `gorm:"not null;default:0"`
	TotalWeightKg float64      `gorm:"not null"`
	Remarks       string       `gorm:"type:text"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (SaleRecord) TableName() string { return "sale_records" }

// RemainingSummary reconciles live birds for a batch.
type RemainingSummary struct {
	Housed         int
	TotalMortality int
	TotalSold      int
	Remaining      int
}
