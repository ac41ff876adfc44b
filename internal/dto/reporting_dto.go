package dto

import (
	"time"

	"github.com/mzigohq/accounting_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AgingReportParams selects the report kind and cutoff date.
type AgingReportParams struct {
	Kind string `form:"kind" binding:"required,oneof=RECEIVABLE PAYABLE"`
	AsOf string `form:"asOf"` // YYYY-MM-DD, defaults to today
}

// AgingItemResponse is one open item inside an aging bucket.
type AgingItemResponse struct {
	ItemID          string          `json:"itemID"`
	Reference       string          `json:"reference"`
	PartyName       string          `json:"partyName"`
	Date            time.Time       `json:"date"`
	DaysOutstanding int             `json:"daysOutstanding"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
}

// AgingBucketResponse is a labelled day-range bucket with its items.
type AgingBucketResponse struct {
	Label   string              `json:"label"`
	MinDays int                 `json:"minDays"`
	MaxDays *int                `json:"maxDays,omitempty"`
	Items   []AgingItemResponse `json:"items"`
	Total   decimal.Decimal     `json:"total"`
	Count   int                 `json:"count"`
}

// AgingReportResponse is the full aging report for one side of the
// ledger (receivables or payables).
type AgingReportResponse struct {
	Kind             string                `json:"kind"`
	AsOf             time.Time             `json:"asOf"`
	Buckets          []AgingBucketResponse `json:"buckets"`
	TotalOutstanding decimal.Decimal       `json:"totalOutstanding"`
	TotalCount       int                   `json:"totalCount"`
}

// ToAgingReportResponse converts a domain.AgingReport to its DTO.
func ToAgingReportResponse(kind domain.AgingKind, report *domain.AgingReport) AgingReportResponse {
	buckets := report.Buckets()
	out := AgingReportResponse{
		Kind:             string(kind),
		AsOf:             report.AsOf,
		Buckets:          make([]AgingBucketResponse, 0, len(buckets)),
		TotalOutstanding: report.TotalOutstanding,
		TotalCount:       report.TotalCount,
	}
	for _, b := range buckets {
		items := make([]AgingItemResponse, 0, len(b.Items))
		for _, it := range b.Items {
			items = append(items, AgingItemResponse{
				ItemID:          it.ItemID,
				Reference:       it.Reference,
				PartyName:       it.PartyName,
				Date:            it.Date,
				DaysOutstanding: it.DaysOutstanding,
				Amount:          it.Amount,
				CurrencyCode:    it.CurrencyCode,
			})
		}
		out.Buckets = append(out.Buckets, AgingBucketResponse{
			Label:   b.Label,
			MinDays: b.MinDays,
			MaxDays: b.MaxDays,
			Items:   items,
			Total:   b.Total,
			Count:   b.Count,
		})
	}
	return out
}

// AccountBalanceRow is one row in the balance listing report.
type AccountBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType string          `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
	RolledUp    bool            `json:"rolledUp"`
}

// BalanceListingResponse lists balances for all active accounts.
type BalanceListingResponse struct {
	AsOf     time.Time           `json:"asOf"`
	Currency string              `json:"currency"`
	Rows     []AccountBalanceRow `json:"rows"`
}
