package service

import (
	"context"
	"time"

	"github.com/poultrylabs/brooder/internal/batchlock"
	"github.com/poultrylabs/brooder/internal/dateutil"
	feeddomain "github.com/poultrylabs/brooder/internal/feed/domain"
	flockdomain "github.com/poultrylabs/brooder/internal/flock/domain"
	medicinedomain "github.com/poultrylabs/brooder/internal/medicine/domain"
	monitoringdomain "github.com/poultrylabs/brooder/internal/monitoring/domain"
	"github.com/poultrylabs/brooder/internal/report/domain"
	"github.com/poultrylabs/brooder/internal/round"
	saledomain "github.com/poultrylabs/brooder/internal/sale/domain"
	"github.com/poultrylabs/brooder/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log            *zap.Logger
	Locker         *batchlock.Locker
	FlockRepo      flockdomain.Repository
	MonitoringRepo monitoringdomain.Repository
	FeedRepo       feeddomain.Repository
	SaleRepo       saledomain.Repository
	MedicineStore  repository.Repository[medicinedomain.MedicineEntry]
}

type Service struct {
	log            *zap.Logger
	locker         *batchlock.Locker
	flockRepo      flockdomain.Repository
	monitoringRepo monitoringdomain.Repository
	feedRepo       feeddomain.Repository
	saleRepo       saledomain.Repository
	medicineStore  repository.Repository[medicinedomain.MedicineEntry]
}

func NewService(p Params) domain.Service {
	return &Service{
		log:            p.Log.Named("report.service"),
		locker:         p.Locker,
		flockRepo:      p.FlockRepo,
		monitoringRepo: p.MonitoringRepo,
		feedRepo:       p.FeedRepo,
		saleRepo:       p.SaleRepo,
		medicineStore:  p.MedicineStore,
	}
}

// BuildPerformanceReport assembles the closing view of a batch. The batch lock
// is held for the whole read so the ledgers cannot shift mid-aggregation.
func (s *Service) BuildPerformanceReport(ctx context.Context, batchNo string) (*domain.PerformanceReport, error) {
	flock, err := s.resolveFlock(ctx, batchNo)
	if err != nil {
		return nil, err
	}

	release := s.locker.Acquire(flock.BatchNo)
	defer release()

	records, err := s.monitoringRepo.ListByBatch(ctx, flock.BatchNo)
	if err != nil {
		return nil, err
	}
	rows, totalMortality := buildDayRows(flock.TotalChicks, records)

	feedTxns, err := s.feedRepo.ListByBatch(ctx, flock.BatchNo)
	if err != nil {
		return nil, err
	}
	feed := summarizeFeed(feedTxns)

	medicineByDate, totalMedicineCost, err := s.groupMedicine(ctx, flock.BatchNo)
	if err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.ListByBatch(ctx, flock.BatchNo)
	if err != nil {
		return nil, err
	}

	housed := flock.TotalChicks
	balanceChicks := housed - totalMortality
	if balanceChicks < 0 {
		balanceChicks = 0
	}
	mortalityPercent := 0.0
	if housed > 0 {
		mortalityPercent = round.To(float64(totalMortality)/float64(housed)*100, 2)
	}

	rollup := summarizeSales(sales, flock.StartDate, balanceChicks)
	remainingChicks := housed - totalMortality - rollup.TotalBirdsSold
	if remainingChicks < 0 {
		remainingChicks = 0
	}

	costs := domain.CostBreakdown{
		ChickCost:    round.Money(float64(housed) * flock.PricePerChick),
		FeedCost:     feed.NetCost,
		MedicineCost: totalMedicineCost,
		Overhead:     round.Money(float64(housed) * domain.OverheadPerBird),
	}
	costs.TotalCost = round.Money(costs.ChickCost + costs.FeedCost + costs.MedicineCost + costs.Overhead)

	perf := domain.Performance{
		HousedChicks:     housed,
		TotalMortality:   totalMortality,
		MortalityPercent: mortalityPercent,
	}
	if balanceChicks > 0 {
		v := round.To(feed.NetKg/float64(balanceChicks), 4)
		perf.CumulativeFeedPerBird = &v
	}
	if rollup.TotalWeightKg > 0 {
		fcr := round.To(feed.NetKg/rollup.TotalWeightKg, 3)
		perf.FCR = &fcr

		productionCost := round.Money(costs.TotalCost / rollup.TotalWeightKg)
		perf.ProductionCostPerKg = &productionCost

		gcPerKg := domain.GCPerKg(productionCost)
		perf.GCPerKg = &gcPerKg

		totalGC := round.Money(gcPerKg * rollup.TotalWeightKg)
		tds := round.Money(totalGC * domain.TDSRate)
		netGC := round.Money(totalGC - tds)
		perf.TotalGC = &totalGC
		perf.TDS = &tds
		perf.NetGC = &netGC
		perf.FinalAmount = &netGC
	}

	hasMinRecords := len(rows) >= domain.MinRecordDays
	salesMatch := abs(rollup.ShortExcess) <= domain.SalesTolerance
	validation := domain.Validation{
		MinRecordDays:         domain.MinRecordDays,
		RecordCount:           len(rows),
		HasMinRecords:         hasMinRecords,
		ExpectedBirdsSold:     rollup.ExpectedBirdsSold,
		Tolerance:             domain.SalesTolerance,
		SalesMatchesInventory: salesMatch,
		SalesDelta:            rollup.ShortExcess,
		PerformanceReady:      hasMinRecords || salesMatch,
	}

	return &domain.PerformanceReport{
		Batch:             batchInfo(flock),
		Rows:              rows,
		Feed:              feed,
		Sales:             rollup,
		Costs:             costs,
		Performance:       perf,
		Validation:        validation,
		MedicineByDate:    medicineByDate,
		TotalMedicineCost: totalMedicineCost,
		RemainingChicks:   remainingChicks,
	}, nil
}

func (s *Service) BuildCurrentReport(ctx context.Context, batchNo string) (*domain.CurrentReport, error) {
	flock, err := s.resolveFlock(ctx, batchNo)
	if err != nil {
		return nil, err
	}

	release := s.locker.Acquire(flock.BatchNo)
	defer release()

	records, err := s.monitoringRepo.ListByBatch(ctx, flock.BatchNo)
	if err != nil {
		return nil, err
	}
	rows, totalMortality := buildDayRows(flock.TotalChicks, records)

	feedTxns, err := s.feedRepo.ListByBatch(ctx, flock.BatchNo)
	if err != nil {
		return nil, err
	}
	var feedIn, feedOut, feedUsed float64
	for _, txn := range feedTxns {
		feedIn += txn.KgIn
		if txn.KgOut > 0 {
			if txn.IsDailyUsage() {
				feedUsed += txn.KgOut
			} else {
				feedOut += txn.KgOut
			}
		}
	}

	medicineByDate, _, err := s.groupMedicine(ctx, flock.BatchNo)
	if err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.ListByBatch(ctx, flock.BatchNo)
	if err != nil {
		return nil, err
	}
	var totalBirdsSold int
	var totalWeightSold float64
	for _, sale := range sales {
		totalBirdsSold += sale.Birds
		totalWeightSold += sale.TotalWeightKg
	}

	housed := flock.TotalChicks
	remaining := housed - totalMortality - totalBirdsSold
	if remaining < 0 {
		remaining = 0
	}
	mortalityPercent := 0.0
	if housed > 0 {
		mortalityPercent = round.To(float64(totalMortality)/float64(housed)*100, 2)
	}

	return &domain.CurrentReport{
		Batch: batchInfo(flock),
		Summary: domain.CurrentSummary{
			RemainingChicks:            remaining,
			TotalFeedInKg:              round.Kg(feedIn),
			TotalFeedOutKg:             round.Kg(feedOut),
			TotalFeedUsedKg:            round.Kg(feedUsed),
			FeedRemainingKg:            round.Kg(feedIn - feedOut - feedUsed),
			TotalBirdsSold:             totalBirdsSold,
			TotalWeightSoldKg:          round.Kg(totalWeightSold),
			CumulativeMortality:        totalMortality,
			CumulativeMortalityPercent: mortalityPercent,
		},
		Rows:           rows,
		MedicineByDate: medicineByDate,
	}, nil
}

// buildDayRows walks the monitoring records oldest first, carrying cumulative
// mortality and feed. Per-bird figures divide by the birds alive at the start
// of the day except the cumulative one, which stays per housed chick.
func buildDayRows(housed int, records []*monitoringdomain.DailyMonitoringRecord) ([]domain.DayRow, int) {
	rows := make([]domain.DayRow, 0, len(records))
	cumulativeMort := 0
	cumulativeFeedKg := 0.0
	for _, rec := range records {
		prevCumulative := cumulativeMort
		cumulativeMort += rec.Mortality
		birdsAtStart := housed - prevCumulative
		if birdsAtStart < 0 {
			birdsAtStart = 0
		}
		cumulativeFeedKg += rec.FeedKg

		feedPerBird := 0.0
		if birdsAtStart > 0 {
			feedPerBird = rec.FeedKg / float64(birdsAtStart)
		}
		mortalityPercent := 0.0
		cumulativeFeedPerBird := 0.0
		if housed > 0 {
			mortalityPercent = float64(cumulativeMort) / float64(housed) * 100
			cumulativeFeedPerBird = cumulativeFeedKg / float64(housed)
		}

		rows = append(rows, domain.DayRow{
			RecordID:              rec.ID,
			Date:                  rec.Date,
			Age:                   rec.Age,
			Mortality:             rec.Mortality,
			CumulativeMortality:   cumulativeMort,
			MortalityPercent:      round.To(mortalityPercent, 2),
			BirdsAtStart:          birdsAtStart,
			FeedBags:              rec.FeedBags,
			FeedKg:                round.Kg(rec.FeedKg),
			FeedPerBird:           round.To(feedPerBird, 4),
			CumulativeFeedKg:      round.Kg(cumulativeFeedKg),
			CumulativeFeedPerBird: round.To(cumulativeFeedPerBird, 4),
			AvgWeight:             rec.AvgWeight,
			Remarks:               rec.Remarks,
		})
	}
	return rows, cumulativeMort
}

// summarizeFeed totals the ledger twice: once over everything and once with
// the daily-usage withdrawals excluded (the procurement view).
func summarizeFeed(txns []*feeddomain.FeedTransaction) domain.FeedSummary {
	var summary domain.FeedSummary
	for _, txn := range txns {
		if txn.KgIn > 0 {
			summary.GrossInKg += txn.KgIn
			summary.GrossCostIn += txn.TotalCost
			if !txn.IsDailyUsage() {
				summary.NetKg += txn.KgIn
				summary.NetCost += txn.TotalCost
			}
		}
		if txn.KgOut > 0 {
			summary.GrossOutKg += txn.KgOut
			summary.GrossCostOut += txn.TotalCost
			if !txn.IsDailyUsage() {
				summary.NetKg -= txn.KgOut
				summary.NetCost -= txn.TotalCost
			}
		}
	}
	summary.GrossInKg = round.Kg(summary.GrossInKg)
	summary.GrossOutKg = round.Kg(summary.GrossOutKg)
	summary.GrossRemainingKg = round.Kg(summary.GrossInKg - summary.GrossOutKg)
	summary.GrossCostIn = round.Money(summary.GrossCostIn)
	summary.GrossCostOut = round.Money(summary.GrossCostOut)
	summary.CostRemaining = round.Money(summary.GrossCostIn - summary.GrossCostOut)
	summary.NetKg = round.Kg(summary.NetKg)
	summary.NetCost = round.Money(summary.NetCost)
	return summary
}

func summarizeSales(sales []*saledomain.SaleRecord, startDate time.Time, expectedBirdsSold int) domain.SalesRollup {
	rollup := domain.SalesRollup{ExpectedBirdsSold: expectedBirdsSold}
	weightedAgeSum := 0.0
	for _, sale := range sales {
		rollup.TotalBirdsSold += sale.Birds
		rollup.TotalWeightKg += sale.TotalWeightKg
		age := dateutil.DaysBetween(startDate, sale.Date)
		if age >= 0 {
			weightedAgeSum += float64(sale.Birds) * float64(age)
		}
	}
	rollup.TotalWeightKg = round.Kg(rollup.TotalWeightKg)
	if rollup.TotalBirdsSold > 0 {
		rollup.AvgWeightPerBird = round.Kg(rollup.TotalWeightKg / float64(rollup.TotalBirdsSold))
		if weightedAgeSum > 0 {
			mean := round.To(weightedAgeSum/float64(rollup.TotalBirdsSold), 1)
			rollup.MeanSaleAgeDays = &mean
		}
	}
	rollup.ShortExcess = rollup.TotalBirdsSold - expectedBirdsSold
	return rollup
}

func (s *Service) groupMedicine(ctx context.Context, batchNo string) (map[string][]domain.MedicineItem, float64, error) {
	entries, err := s.medicineStore.Find(ctx, &medicinedomain.MedicineEntry{BatchNo: batchNo})
	if err != nil {
		return nil, 0, err
	}
	grouped := make(map[string][]domain.MedicineItem, len(entries))
	total := 0.0
	for _, entry := range entries {
		key := dateutil.Format(entry.Date)
		grouped[key] = append(grouped[key], domain.MedicineItem{
			ID:        entry.ID,
			Name:      entry.Name,
			Quantity:  entry.Quantity,
			UnitPrice: entry.UnitPrice,
			TotalCost: entry.TotalCost,
			Dose:      entry.Dose,
		})
		total += entry.TotalCost
	}
	return grouped, round.Money(total), nil
}

func (s *Service) resolveFlock(ctx context.Context, batchNo string) (*flockdomain.Flock, error) {
	flock, err := s.flockRepo.FindByBatchNo(ctx, batchNo)
	if err != nil {
		return nil, err
	}
	if flock == nil {
		return nil, flockdomain.ErrNotFound
	}
	return flock, nil
}

func batchInfo(flock *flockdomain.Flock) domain.BatchInfo {
	return domain.BatchInfo{
		ID:            flock.ID,
		BatchNo:       flock.BatchNo,
		StartDate:     flock.StartDate,
		Status:        string(flock.Status),
		TotalChicks:   flock.TotalChicks,
		PricePerChick: flock.PricePerChick,
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
