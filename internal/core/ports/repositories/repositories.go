package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// Wired once at startup from the pgsql implementations.
type RepositoryProvider struct {
	AccountRepo      AccountRepositoryFacade
	JournalRepo      JournalRepositoryFacade
	BankRepo         BankRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	ReportingRepo    ReportingRepository
}
