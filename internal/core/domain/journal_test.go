package domain_test

import (
	"testing"

	"github.com/mzigohq/accounting_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestJournalStatus_CanTransitionTo(t *testing.T) {
	statuses := []domain.JournalStatus{
		domain.StatusDraft,
		domain.StatusPendingApproval,
		domain.StatusPosted,
		domain.StatusRejected,
		domain.StatusVoided,
	}

	allowed := map[domain.JournalStatus][]domain.JournalStatus{
		domain.StatusDraft:           {domain.StatusPendingApproval},
		domain.StatusPendingApproval: {domain.StatusPosted, domain.StatusRejected},
		domain.StatusRejected:        {domain.StatusPendingApproval},
		domain.StatusPosted:          {domain.StatusVoided},
		domain.StatusVoided:          {},
	}

	for _, from := range statuses {
		for _, to := range statuses {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestJournalStatus_IsEditable(t *testing.T) {
	assert.True(t, domain.StatusDraft.IsEditable())
	assert.True(t, domain.StatusRejected.IsEditable())
	assert.False(t, domain.StatusPendingApproval.IsEditable())
	assert.False(t, domain.StatusPosted.IsEditable())
	assert.False(t, domain.StatusVoided.IsEditable())
}

func TestNormalBalanceFor(t *testing.T) {
	assert.Equal(t, domain.DebitNormal, domain.NormalBalanceFor(domain.Asset))
	assert.Equal(t, domain.DebitNormal, domain.NormalBalanceFor(domain.Expense))
	assert.Equal(t, domain.CreditNormal, domain.NormalBalanceFor(domain.Liability))
	assert.Equal(t, domain.CreditNormal, domain.NormalBalanceFor(domain.Equity))
	assert.Equal(t, domain.CreditNormal, domain.NormalBalanceFor(domain.Revenue))
}
