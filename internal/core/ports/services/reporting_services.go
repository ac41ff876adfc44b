package services

import (
	"context"
	"io"
	"time"

	"github.com/mzigohq/accounting_backend/internal/core/domain"
	"github.com/mzigohq/accounting_backend/internal/dto"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// AgingReport buckets open receivables or payables by days outstanding
	// as of the given date.
	AgingReport(ctx context.Context, kind domain.AgingKind, asOf time.Time) (*domain.AgingReport, error)

	// BalanceListing computes balances for all active accounts in base
	// currency, rolled up through the account hierarchy.
	BalanceListing(ctx context.Context, asOf time.Time) (*dto.BalanceListingResponse, error)

	// ExportBalancesCSV writes the balance listing as CSV to w.
	ExportBalancesCSV(ctx context.Context, asOf time.Time, w io.Writer) error

	// ExportAgingCSV writes the open-item detail of an aging report as CSV
	// to w.
	ExportAgingCSV(ctx context.Context, kind domain.AgingKind, asOf time.Time, w io.Writer) error
}
