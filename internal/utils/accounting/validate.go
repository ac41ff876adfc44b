package accounting

import (
	"github.com/mzigohq/accounting_backend/internal/apperrors"
	"github.com/mzigohq/accounting_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceEpsilon is the tolerance for the double-entry balance check and the
// reconciliation amount match, in base-currency units. A difference of
// exactly 0.01 is NOT within tolerance.
var BalanceEpsilon = decimal.NewFromFloat(0.01)

// ValidateLine checks a single journal line in isolation: non-negative
// amounts, exactly one nonzero side, and a positive rate to base.
func ValidateLine(line domain.JournalLine) error {
	if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
		return apperrors.NewValidationError("line amounts must not be negative for account %s", line.AccountID)
	}
	debitSet := line.DebitAmount.IsPositive()
	creditSet := line.CreditAmount.IsPositive()
	if debitSet == creditSet {
		return apperrors.NewValidationError("exactly one of debit and credit must be set for account %s", line.AccountID)
	}
	if !line.RateToBase.IsPositive() {
		return apperrors.NewValidationError("rate to base must be positive for account %s", line.AccountID)
	}
	return nil
}

// ValidateEntryBalance enforces the double-entry invariant over a proposed
// set of journal lines: at least two lines, each individually valid, and
// base-currency debits equal to base-currency credits within BalanceEpsilon.
// On imbalance it returns an UnbalancedEntryError carrying both sums.
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return apperrors.NewValidationError("journal entry must have at least two lines")
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range lines {
		if err := ValidateLine(line); err != nil {
			return err
		}
		if line.IsDebit() {
			debits = debits.Add(line.AmountInBase())
		} else {
			credits = credits.Add(line.AmountInBase())
		}
	}

	diff := debits.Sub(credits)
	if diff.Abs().GreaterThanOrEqual(BalanceEpsilon) {
		return &apperrors.UnbalancedEntryError{
			Debits:     debits,
			Credits:    credits,
			Difference: diff,
		}
	}
	return nil
}
