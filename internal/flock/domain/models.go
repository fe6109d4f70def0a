// Package domain contains the batch (flock) lifecycle model.
package domain

import (
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/poultrylabs/brooder/internal/dateutil"
)

// FlockStatus tracks the batch lifecycle.
type FlockStatus string

const (
	FlockStatusActive FlockStatus = "active"
	FlockStatusClosed FlockStatus = "closed"
)

// MinCloseAge is the latest recorded age a batch must reach before it may be
// closed. Independent of the report-trust gate.
const MinCloseAge = 40

// Flock is one reared cohort of birds from intake to sale/closure.
type Flock struct {
	ID            snowflake.ID `gorm:"primaryKey"`
	OwnerID       snowflake.ID `gorm:"not null;index"`
	BatchNo       string       `gorm:"type:text;not null;uniqueIndex"`
	StartDate     time.Time    `gorm:"not null"`
	TotalChicks   int          `gorm:"not null"`
	PricePerChick float64      `gorm:"not null;default:0"`
	Status        FlockStatus  `gorm:"type:text;not null;index"`
	Remarks       string       `gorm:"type:text"`
	ClosedAt      *time.Time
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Flock) TableName() string { return "flocks" }

// IsActive reports whether the batch accepts mutations.
func (f *Flock) IsActive() bool { return f.Status == FlockStatusActive }

// NewBatchNo mints the owner-visible batch code from the start date and the
// low bits of the generated ID, e.g. BATCH-20240101-3F07A1.
func NewBatchNo(startDate time.Time, id snowflake.ID) string {
	return fmt.Sprintf("BATCH-%s-%06X",
		dateutil.Normalize(startDate).Format("20060102"),
		int64(id)&0xFFFFFF,
	)
}
