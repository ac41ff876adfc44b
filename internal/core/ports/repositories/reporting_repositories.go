package repositories

import (
	"context"
	"time"

	"github.com/mzigohq/accounting_backend/internal/core/domain"
)

// ReportingRepository defines the read-only queries backing reports.
type ReportingRepository interface {
	// FindOpenItems retrieves the open receivable or payable documents as of
	// a date: posted, non-voided entries tagged with the matching reference
	// type whose amounts are already converted to base currency.
	FindOpenItems(ctx context.Context, kind domain.AgingKind, asOf time.Time) ([]domain.AgingItem, error)
}
