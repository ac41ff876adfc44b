package accounting

import (
	"fmt"

	"github.com/mzigohq/accounting_backend/internal/apperrors"
	"github.com/mzigohq/accounting_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount returns the effect of a journal line on its account's balance,
// in base currency, honoring the account's normal-balance side. For a
// debit-normal account debits are positive; for a credit-normal account
// credits are positive.
func SignedAmount(line domain.JournalLine, normal domain.NormalBalance) decimal.Decimal {
	amount := line.AmountInBase()
	switch normal {
	case domain.DebitNormal:
		if !line.IsDebit() {
			return amount.Neg()
		}
	case domain.CreditNormal:
		if line.IsDebit() {
			return amount.Neg()
		}
	}
	return amount
}

// DirectBalance computes the balance of a single account from the posted
// journal lines that reference it. Callers pre-filter lines to POSTED,
// non-voided entries; lines against other accounts are ignored.
func DirectBalance(account domain.ChartAccount, postedLines []domain.JournalLine) decimal.Decimal {
	balance := decimal.Zero
	for _, line := range postedLines {
		if line.AccountID != account.AccountID {
			continue
		}
		balance = balance.Add(SignedAmount(line, account.NormalBalance))
	}
	return balance
}

// AccountArena is the flat id->account representation of the chart-of-accounts
// tree. Parent pointers live on the accounts; children are derived on demand.
type AccountArena map[string]domain.ChartAccount

// ChildrenIndex inverts the arena's parent pointers.
func (a AccountArena) ChildrenIndex() map[string][]string {
	children := make(map[string][]string, len(a))
	for id, acc := range a {
		if acc.ParentAccountID != "" {
			children[acc.ParentAccountID] = append(children[acc.ParentAccountID], id)
		}
	}
	return children
}

// ValidateNoCycle checks that assigning newParentID as the parent of
// accountID keeps the arena acyclic. An empty newParentID (detaching to root)
// is always valid.
func (a AccountArena) ValidateNoCycle(accountID, newParentID string) error {
	if newParentID == "" {
		return nil
	}
	if newParentID == accountID {
		return apperrors.NewValidationError("account %s cannot be its own parent", accountID)
	}
	// Walk up from the proposed parent; hitting accountID means the
	// reassignment would close a loop.
	seen := make(map[string]struct{}, len(a))
	current := newParentID
	for current != "" {
		if current == accountID {
			return apperrors.NewValidationError("parent assignment would create a cycle through account %s", accountID)
		}
		if _, dup := seen[current]; dup {
			return fmt.Errorf("%w: existing parent chain already contains a cycle at account %s", apperrors.ErrInternal, current)
		}
		seen[current] = struct{}{}
		parent, ok := a[current]
		if !ok {
			return fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, current)
		}
		current = parent.ParentAccountID
	}
	return nil
}

// RolledUpBalance computes the balance of an account including all of its
// descendants: its own direct postings plus the recursively computed balances
// of every child. The arena is cycle-free by construction (ValidateNoCycle
// runs on every parent assignment).
func RolledUpBalance(arena AccountArena, accountID string, postedLines []domain.JournalLine) (decimal.Decimal, error) {
	account, ok := arena[accountID]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}

	children := arena.ChildrenIndex()
	linesByAccount := make(map[string][]domain.JournalLine, len(postedLines))
	for _, line := range postedLines {
		linesByAccount[line.AccountID] = append(linesByAccount[line.AccountID], line)
	}

	var walk func(acc domain.ChartAccount) decimal.Decimal
	walk = func(acc domain.ChartAccount) decimal.Decimal {
		balance := decimal.Zero
		for _, line := range linesByAccount[acc.AccountID] {
			balance = balance.Add(SignedAmount(line, acc.NormalBalance))
		}
		for _, childID := range children[acc.AccountID] {
			balance = balance.Add(walk(arena[childID]))
		}
		return balance
	}
	return walk(account), nil
}
