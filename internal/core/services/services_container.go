package services

import (
	portsrepo "github.com/mzigohq/accounting_backend/internal/core/ports/repositories"
	portssvc "github.com/mzigohq/accounting_backend/internal/core/ports/services"
	"github.com/mzigohq/accounting_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Exchange rates come first: the journal service consults the rate table
	// when lines omit an explicit rate.
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, cfg.BaseCurrency)

	container.Account = NewAccountService(repos.AccountRepo, repos.JournalRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, container.ExchangeRate)
	container.Bank = NewBankService(repos.BankRepo, repos.AccountRepo, repos.JournalRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AccountRepo, repos.JournalRepo, cfg.BaseCurrency)

	return container
}
