package accounting_test

import (
	"testing"
	"time"

	"github.com/mzigohq/accounting_backend/internal/core/domain"
	"github.com/mzigohq/accounting_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var asOf = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

func agingItem(id string, ageDays int, amount float64) domain.AgingItem {
	return domain.AgingItem{
		ItemID:    id,
		Reference: "INV-" + id,
		Date:      asOf.AddDate(0, 0, -ageDays),
		Amount:    decimal.NewFromFloat(amount),
	}
}

func TestDaysOutstanding(t *testing.T) {
	assert.Equal(t, 0, accounting.DaysOutstanding(asOf, asOf))
	assert.Equal(t, 45, accounting.DaysOutstanding(asOf.AddDate(0, 0, -45), asOf))
	assert.Equal(t, 0, accounting.DaysOutstanding(asOf.AddDate(0, 0, 3), asOf), "future dates clamp to zero")
	// Partial days floor down.
	assert.Equal(t, 1, accounting.DaysOutstanding(asOf.Add(-36*time.Hour), asOf))
}

func TestClassifyAging_BucketBoundaries(t *testing.T) {
	tests := []struct {
		age    int
		bucket string
	}{
		{0, "Current"},
		{30, "Current"},
		{31, "31-60 Days"},
		{60, "31-60 Days"},
		{61, "61-90 Days"},
		{90, "61-90 Days"},
		{91, "90+ Days"},
		{400, "90+ Days"},
	}

	for _, tt := range tests {
		report := accounting.ClassifyAging([]domain.AgingItem{agingItem("x", tt.age, 100)}, asOf)

		var got string
		for _, bucket := range report.Buckets() {
			if bucket.Count == 1 {
				got = bucket.Label
			}
		}
		assert.Equal(t, tt.bucket, got, "age %d days", tt.age)
	}
}

func TestClassifyAging_BucketBounds(t *testing.T) {
	report := accounting.ClassifyAging(nil, asOf)

	require.NotNil(t, report.Current.MaxDays)
	assert.Equal(t, 0, report.Current.MinDays)
	assert.Equal(t, 30, *report.Current.MaxDays)
	require.NotNil(t, report.Days30.MaxDays)
	assert.Equal(t, 31, report.Days30.MinDays)
	assert.Equal(t, 60, *report.Days30.MaxDays)
	require.NotNil(t, report.Days60.MaxDays)
	assert.Equal(t, 61, report.Days60.MinDays)
	assert.Equal(t, 90, *report.Days60.MaxDays)
	assert.Equal(t, 91, report.Days90Plus.MinDays)
	assert.Nil(t, report.Days90Plus.MaxDays, "oldest bucket is open-ended")
}

func TestClassifyAging_Partition(t *testing.T) {
	items := []domain.AgingItem{
		agingItem("a", 5, 1000),
		agingItem("b", 30, 500),
		agingItem("c", 31, 250),
		agingItem("d", 75, 125),
		agingItem("e", 91, 60),
		agingItem("f", 200, 40),
	}

	report := accounting.ClassifyAging(items, asOf)

	// Every item in exactly one bucket; totals line up.
	bucketCount := 0
	bucketTotal := decimal.Zero
	for _, bucket := range report.Buckets() {
		bucketCount += bucket.Count
		bucketTotal = bucketTotal.Add(bucket.Total)
		assert.Len(t, bucket.Items, bucket.Count)
	}
	assert.Equal(t, len(items), bucketCount)
	assert.Equal(t, len(items), report.TotalCount)
	assert.True(t, report.TotalOutstanding.Equal(bucketTotal))
	assert.True(t, decimal.NewFromInt(1975).Equal(report.TotalOutstanding))

	assert.Equal(t, 2, report.Current.Count)
	assert.Equal(t, 1, report.Days30.Count)
	assert.Equal(t, 1, report.Days60.Count)
	assert.Equal(t, 2, report.Days90Plus.Count)

	// DaysOutstanding is filled in on the bucketed copies.
	require.Len(t, report.Days30.Items, 1)
	assert.Equal(t, 31, report.Days30.Items[0].DaysOutstanding)
}

func TestClassifyAging_Deterministic(t *testing.T) {
	items := []domain.AgingItem{agingItem("a", 10, 100), agingItem("b", 95, 50)}

	first := accounting.ClassifyAging(items, asOf)
	second := accounting.ClassifyAging(items, asOf)
	assert.Equal(t, first, second)
}

func TestClassifyAging_Empty(t *testing.T) {
	report := accounting.ClassifyAging(nil, asOf)
	assert.Equal(t, 0, report.TotalCount)
	assert.True(t, report.TotalOutstanding.IsZero())
	for _, bucket := range report.Buckets() {
		assert.Empty(t, bucket.Items)
	}
}
