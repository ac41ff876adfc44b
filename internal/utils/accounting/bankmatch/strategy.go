// Package bankmatch holds the matching strategies used to pair bank-statement
// transactions with unreconciled journal lines on the linked cash account.
package bankmatch

import (
	"sort"
	"time"

	"github.com/mzigohq/accounting_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// amountEpsilon is the exclusive cutoff for an exact-amount match: a
// difference of 0.009 matches, 0.01 does not.
var amountEpsilon = decimal.NewFromFloat(0.01)

// Strategy decides whether a candidate journal line matches a bank
// transaction. Implementations must be pure.
type Strategy interface {
	Name() string
	Matches(txn domain.BankTransaction, candidate domain.ReconciliationCandidate) bool
}

// AmountOnly matches on amount alone, ignoring dates and descriptions.
type AmountOnly struct{}

func (AmountOnly) Name() string { return "amount-only" }

func (AmountOnly) Matches(txn domain.BankTransaction, candidate domain.ReconciliationCandidate) bool {
	return amountsMatch(txn, candidate)
}

// AmountWithinWindow matches on amount and requires the journal entry's date
// to fall within Window of the bank transaction's date (either side).
type AmountWithinWindow struct {
	Window time.Duration
}

func (AmountWithinWindow) Name() string { return "amount-date-window" }

func (s AmountWithinWindow) Matches(txn domain.BankTransaction, candidate domain.ReconciliationCandidate) bool {
	if !amountsMatch(txn, candidate) {
		return false
	}
	gap := txn.TransactionDate.Sub(candidate.EntryDate)
	if gap < 0 {
		gap = -gap
	}
	return gap <= s.Window
}

func amountsMatch(txn domain.BankTransaction, candidate domain.ReconciliationCandidate) bool {
	return candidate.Line.Amount().Sub(txn.Amount()).Abs().LessThan(amountEpsilon)
}

// Default is the strategy used when the caller does not pick one.
func Default() Strategy { return AmountOnly{} }

// ByName resolves a strategy from its wire name, falling back to the default.
func ByName(name string) Strategy {
	switch name {
	case "amount-date-window":
		// Statement postings commonly lag the book entry by a few days.
		return AmountWithinWindow{Window: 72 * time.Hour}
	default:
		return Default()
	}
}

// FindMatches evaluates every candidate against one bank transaction and
// returns all of them flagged, exact matches first. Within each group the
// original candidate order (entry date, then line) is preserved.
func FindMatches(txn domain.BankTransaction, candidates []domain.ReconciliationCandidate, strategy Strategy) []domain.MatchResult {
	if strategy == nil {
		strategy = Default()
	}

	results := make([]domain.MatchResult, len(candidates))
	for i, candidate := range candidates {
		results[i] = domain.MatchResult{
			Candidate:  candidate,
			ExactMatch: strategy.Matches(txn, candidate),
			Difference: candidate.Line.Amount().Sub(txn.Amount()).Abs(),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ExactMatch && !results[j].ExactMatch
	})
	return results
}
