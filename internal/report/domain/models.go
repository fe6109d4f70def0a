// Package domain contains the report aggregation models. Reports are derived
// views over the flock, monitoring, feed, medicine and sale stores; nothing
// here is persisted.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	// MinRecordDays is the day-record count a batch needs before its
	// performance figures are trusted.
	MinRecordDays = 35
	// SalesTolerance is the accepted absolute gap between birds sold and
	// the expected sellable count.
	SalesTolerance = 10
	// OverheadPerBird is the flat overhead charged per housed chick.
	OverheadPerBird = 6.0
	// TDSRate is the tax deducted at source on the gross growing charge.
	TDSRate = 0.01
)

// DayRow is one day of the batch table shown in both reports.
type DayRow struct {
	RecordID              snowflake.ID
	Date                  time.Time
	Age                   int
	Mortality             int
	CumulativeMortality   int
	MortalityPercent      float64
	BirdsAtStart          int
	FeedBags              float64
	FeedKg                float64
	FeedPerBird           float64
	CumulativeFeedKg      float64
	CumulativeFeedPerBird float64
	AvgWeight             float64
	Remarks               string
}

// FeedSummary carries both feed accounting views. The gross view counts every
// transaction; the procurement view drops the daily-usage withdrawals so it
// matches what was actually bought and returned.
type FeedSummary struct {
	GrossInKg        float64
	GrossOutKg       float64
	GrossRemainingKg float64
	GrossCostIn      float64
	GrossCostOut     float64
	CostRemaining    float64
	NetKg            float64
	NetCost          float64
}

// SalesRollup summarizes the sale ledger against expected inventory.
type SalesRollup struct {
	TotalBirdsSold    int
	TotalWeightKg     float64
	AvgWeightPerBird  float64
	MeanSaleAgeDays   *float64
	ExpectedBirdsSold int
	ShortExcess       int
}

// CostBreakdown is the closing cost sheet.
type CostBreakdown struct {
	ChickCost    float64
	FeedCost     float64
	MedicineCost float64
	Overhead     float64
	TotalCost    float64
}

// Performance holds the derived closing figures. Pointer fields are nil when
// the batch has no sold weight to divide by.
type Performance struct {
	HousedChicks          int
	CumulativeFeedPerBird *float64
	TotalMortality        int
	MortalityPercent      float64
	FCR                   *float64
	ProductionCostPerKg   *float64
	GCPerKg               *float64
	TotalGC               *float64
	TDS                   *float64
	NetGC                 *float64
	FinalAmount           *float64
}

// Validation is the closing-eligibility check sheet.
type Validation struct {
	MinRecordDays         int
	RecordCount           int
	HasMinRecords         bool
	ExpectedBirdsSold     int
	Tolerance             int
	SalesMatchesInventory bool
	SalesDelta            int
	PerformanceReady      bool
}

// BatchInfo is the flock header shared by both reports.
type BatchInfo struct {
	ID            snowflake.ID
	BatchNo       string
	StartDate     time.Time
	Status        string
	TotalChicks   int
	PricePerChick float64
}

// MedicineItem is one medicine entry inside a date group.
type MedicineItem struct {
	ID        snowflake.ID
	Name      string
	Quantity  float64
	UnitPrice float64
	TotalCost float64
	Dose      string
}

// PerformanceReport is the full closing report.
type PerformanceReport struct {
	Batch             BatchInfo
	Rows              []DayRow
	Feed              FeedSummary
	Sales             SalesRollup
	Costs             CostBreakdown
	Performance       Performance
	Validation        Validation
	MedicineByDate    map[string][]MedicineItem
	TotalMedicineCost float64
	RemainingChicks   int
}

// CurrentSummary is the mid-cycle stock position.
type CurrentSummary struct {
	RemainingChicks            int
	TotalFeedInKg              float64
	TotalFeedOutKg             float64
	TotalFeedUsedKg            float64
	FeedRemainingKg            float64
	TotalBirdsSold             int
	TotalWeightSoldKg          float64
	CumulativeMortality        int
	CumulativeMortalityPercent float64
}

// CurrentReport is the lighter in-progress report.
type CurrentReport struct {
	Batch          BatchInfo
	Summary        CurrentSummary
	Rows           []DayRow
	MedicineByDate map[string][]MedicineItem
}
