package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AgingKind selects which side of the open items an aging report covers.
type AgingKind string

const (
	AgingReceivable AgingKind = "RECEIVABLE"
	AgingPayable    AgingKind = "PAYABLE"
)

// AgingItem is a single open receivable or payable to be bucketed by age.
// Amount is already in base currency.
type AgingItem struct {
	ItemID          string          `json:"itemID"`
	Reference       string          `json:"reference"` // Entry number or external document reference
	PartyName       string          `json:"partyName"`
	Date            time.Time       `json:"date"`            // Issue/due date the age is measured from
	DaysOutstanding int             `json:"daysOutstanding"` // floor(asOf - Date), clamped >= 0
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
}

// AgingBucket aggregates the open items whose age falls inside
// [MinDays, MaxDays]. MaxDays is nil for the open-ended oldest bucket.
type AgingBucket struct {
	Label   string          `json:"label"`
	MinDays int             `json:"minDays"`
	MaxDays *int            `json:"maxDays,omitempty"`
	Items   []AgingItem     `json:"items"`
	Total   decimal.Decimal `json:"total"`
	Count   int             `json:"count"`
}

// AgingReport partitions a set of open items into the four fixed age buckets.
// Every item lands in exactly one bucket.
type AgingReport struct {
	AsOf             time.Time       `json:"asOf"`
	Current          AgingBucket     `json:"current"`
	Days30           AgingBucket     `json:"days30"`
	Days60           AgingBucket     `json:"days60"`
	Days90Plus       AgingBucket     `json:"days90Plus"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	TotalCount       int             `json:"totalCount"`
}

// Buckets returns the report's buckets oldest-last for iteration.
func (r *AgingReport) Buckets() []AgingBucket {
	return []AgingBucket{r.Current, r.Days30, r.Days60, r.Days90Plus}
}
