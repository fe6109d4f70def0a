// Package domain contains the daily monitoring model. Records for a batch
// form one contiguous run of calendar days starting at the batch start date.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// MaxAge is the oldest bird age (days) a record may carry.
const MaxAge = 55

// DailyMonitoringRecord is one day's observation for a batch.
type DailyMonitoringRecord struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	BatchID   snowflake.ID `gorm:"not null;index"`
	BatchNo   string       `gorm:"type:text;not null;uniqueIndex:ux_daily_monitoring_batch_date,priority:1"`
	Date      time.Time    `gorm:"not null;uniqueIndex:ux_daily_monitoring_batch_date,priority:2"`
	Age       int          `gorm:"not null"`
	Mortality int          `gorm:"not null;default:0"`
	FeedBags  float64      `gorm:"not null;default:0"`
	KgPerBag  float64      `gorm:"not null;default:0"`
	FeedKg    float64      `gorm:"not null;default:0"`
	AvgWeight float64      `gorm:"not null;default:0"`
	Remarks   string       `gorm:"type:text"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (DailyMonitoringRecord) TableName() string { return "daily_monitoring_records" }
