// Package domain contains the medicine ledger model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// MedicineEntry is one purchase or administration of medicine, vaccine or
// supplement for a batch. TotalCost is always Quantity times UnitPrice.
type MedicineEntry struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	BatchID   snowflake.ID `gorm:"not null;index"`
	BatchNo   string       `gorm:"type:text;not null;index"`
	Date      time.Time    `gorm:"not null"`
	Name      string       `gorm:"type:text;not null"`
	Quantity  float64      `gorm:"not null"`
	UnitPrice float64      `gorm:"not null"`
	TotalCost float64      `gorm:"not null"`
	Dose      string       `gorm:"type:text"`
	Remarks   string       `gorm:"type:text"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (MedicineEntry) TableName() string { return "medicine_entries" }
