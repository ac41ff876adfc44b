package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mzigohq/accounting_backend/internal/core/domain"
	portsrepo "github.com/mzigohq/accounting_backend/internal/core/ports/repositories"
	portssvc "github.com/mzigohq/accounting_backend/internal/core/ports/services"
	"github.com/mzigohq/accounting_backend/internal/dto"
	"github.com/mzigohq/accounting_backend/internal/utils/accounting"
)

// reportingService generates aging reports and balance listings.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountRepositoryFacade
	journalRepo   portsrepo.JournalRepositoryFacade
	baseCurrency  string
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade, baseCurrency string) portssvc.ReportingService {
	if baseCurrency == "" {
		baseCurrency = accounting.DefaultBaseCurrency
	}
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
		journalRepo:   journalRepo,
		baseCurrency:  baseCurrency,
	}
}

// Ensure reportingService implements the portssvc.ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// AgingReport buckets open receivables or payables by days outstanding.
func (s *reportingService) AgingReport(ctx context.Context, kind domain.AgingKind, asOf time.Time) (*domain.AgingReport, error) {
	items, err := s.reportingRepo.FindOpenItems(ctx, kind, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to load open items", slog.String("kind", string(kind)))
		return nil, fmt.Errorf("failed to load open items for %s aging: %w", kind, err)
	}

	report := accounting.ClassifyAging(items, asOf)
	s.LogDebug(ctx, "Aging report generated",
		slog.String("kind", string(kind)),
		slog.Int("items", report.TotalCount))
	return &report, nil
}

// BalanceListing computes rolled-up balances for all active accounts as of a
// date, in base currency.
func (s *reportingService) BalanceListing(ctx context.Context, asOf time.Time) (*dto.BalanceListingResponse, error) {
	all, err := s.accountRepo.ListAccounts(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}

	arena := make(accounting.AccountArena, len(all))
	ids := make([]string, 0, len(all))
	for _, acc := range all {
		arena[acc.AccountID] = acc
		ids = append(ids, acc.AccountID)
	}

	lines, err := s.journalRepo.FindPostedLinesByAccountIDs(ctx, ids, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to load posted lines: %w", err)
	}

	resp := &dto.BalanceListingResponse{
		AsOf:     asOf,
		Currency: s.baseCurrency,
		Rows:     make([]dto.AccountBalanceRow, 0, len(all)),
	}
	for _, acc := range all {
		if !acc.IsActive {
			continue
		}
		balance, err := accounting.RolledUpBalance(arena, acc.AccountID, lines)
		if err != nil {
			return nil, fmt.Errorf("failed to roll up balance for %s: %w", acc.Code, err)
		}
		resp.Rows = append(resp.Rows, dto.AccountBalanceRow{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			Name:        acc.Name,
			AccountType: string(acc.AccountType),
			Balance:     balance,
			RolledUp:    true,
		})
	}
	return resp, nil
}

// ExportBalancesCSV streams the balance listing as CSV.
func (s *reportingService) ExportBalancesCSV(ctx context.Context, asOf time.Time, w io.Writer) error {
	listing, err := s.BalanceListing(ctx, asOf)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"code", "name", "type", "balance", "currency"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range listing.Rows {
		record := []string{row.Code, row.Name, row.AccountType, row.Balance.StringFixed(2), listing.Currency}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", row.Code, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportAgingCSV streams the open-item detail behind an aging report as CSV.
func (s *reportingService) ExportAgingCSV(ctx context.Context, kind domain.AgingKind, asOf time.Time, w io.Writer) error {
	report, err := s.AgingReport(ctx, kind, asOf)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"reference", "party", "date", "days_outstanding", "bucket", "amount", "currency"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, bucket := range report.Buckets() {
		for _, item := range bucket.Items {
			record := []string{
				item.Reference,
				item.PartyName,
				item.Date.Format("2006-01-02"),
				fmt.Sprintf("%d", item.DaysOutstanding),
				bucket.Label,
				item.Amount.StringFixed(2),
				item.CurrencyCode,
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV row for %s: %w", item.Reference, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
