package accounting

import (
	"time"

	"github.com/mzigohq/accounting_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Fixed aging bucket boundaries in days. These are policy constants, not
// configuration.
const (
	agingCurrentMax = 30
	agingDays30Max  = 60
	agingDays60Max  = 90
)

// DaysOutstanding returns the whole days elapsed between an item's date and
// asOf, clamped to zero for future-dated items.
func DaysOutstanding(itemDate, asOf time.Time) int {
	days := int(asOf.Sub(itemDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func intPtr(v int) *int { return &v }

func newBucket(label string, minDays int, maxDays *int) domain.AgingBucket {
	return domain.AgingBucket{
		Label:   label,
		MinDays: minDays,
		MaxDays: maxDays,
		Items:   []domain.AgingItem{},
		Total:   decimal.Zero,
	}
}

// ClassifyAging partitions open items into the four fixed age buckets as of
// the given date. Each item lands in exactly one bucket; per-bucket totals and
// counts plus the grand totals are accumulated. asOf is explicit so repeated
// calls with the same inputs always produce the same report.
func ClassifyAging(items []domain.AgingItem, asOf time.Time) domain.AgingReport {
	report := domain.AgingReport{
		AsOf:             asOf,
		Current:          newBucket("Current", 0, intPtr(agingCurrentMax)),
		Days30:           newBucket("31-60 Days", agingCurrentMax+1, intPtr(agingDays30Max)),
		Days60:           newBucket("61-90 Days", agingDays30Max+1, intPtr(agingDays60Max)),
		Days90Plus:       newBucket("90+ Days", agingDays60Max+1, nil),
		TotalOutstanding: decimal.Zero,
	}

	for _, item := range items {
		item.DaysOutstanding = DaysOutstanding(item.Date, asOf)

		var bucket *domain.AgingBucket
		switch {
		case item.DaysOutstanding <= agingCurrentMax:
			bucket = &report.Current
		case item.DaysOutstanding <= agingDays30Max:
			bucket = &report.Days30
		case item.DaysOutstanding <= agingDays60Max:
			bucket = &report.Days60
		default:
			bucket = &report.Days90Plus
		}

		bucket.Items = append(bucket.Items, item)
		bucket.Total = bucket.Total.Add(item.Amount)
		bucket.Count++

		report.TotalOutstanding = report.TotalOutstanding.Add(item.Amount)
		report.TotalCount++
	}

	return report
}
