// Package domain contains the feed ledger model. The ledger is append-only
// per batch; every row carries direction through bagsIn/bagsOut.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	// BalanceEpsilon is the tolerance for floating balance comparisons.
	BalanceEpsilon = 1e-6

	// DailyUsageType tags ledger withdrawals generated by daily monitoring.
	DailyUsageType    = "Daily Usage"
	DailyUsageTypeKey = "daily usage"
)

// FeedTransaction is one feed in/out posting for a batch. Kilograms are
// rounded to 3 decimals, money to 2.
type FeedTransaction struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	BatchID     snowflake.ID `gorm:"not null;index"`
	BatchNo     string       `gorm:"type:text;not null;index"`
	FeedType    string       `gorm:"type:text;not null"`
	FeedTypeKey string       `gorm:"type:text;index"`
	Date        time.Time    `gorm:"not null"`
	BagsIn      float64      `gorm:"not null;default:0"`
	BagsOut     float64      `gorm:"not null;default:0"`
	KgPerBag    float64      `gorm:"not null;default:0"`
	KgIn        float64      `gorm:"not null;default:0"`
	KgOut       float64      `gorm:"not null;default:0"`
	UnitPrice   float64      `gorm:"not null;default:0"`
	TotalCost   float64      `gorm:"not null;default:0"`
	// DailyRecordID links an auto-generated daily-usage withdrawal back to
	// the monitoring record that spawned it. Nil for manual postings.
	DailyRecordID *snowflake.ID `gorm:"index"`
	CreatedAt     time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (FeedTransaction) TableName() string { return "feed_transactions" }

// IsDailyUsage reports whether this posting was generated by the daily
// monitoring recorder rather than entered manually.
func (t *FeedTransaction) IsDailyUsage() bool {
	return t.DailyRecordID != nil || t.FeedTypeKey == DailyUsageTypeKey
}
