package accounting_test

import (
	"errors"
	"testing"

	"github.com/mzigohq/accounting_backend/internal/apperrors"
	"github.com/mzigohq/accounting_backend/internal/core/domain"
	"github.com/mzigohq/accounting_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debitLine(accountID string, amount float64, rate float64) domain.JournalLine {
	return domain.JournalLine{
		LineID:      accountID + "-d",
		AccountID:   accountID,
		DebitAmount: decimal.NewFromFloat(amount),
		RateToBase:  decimal.NewFromFloat(rate),
	}
}

func creditLine(accountID string, amount float64, rate float64) domain.JournalLine {
	return domain.JournalLine{
		LineID:       accountID + "-c",
		AccountID:    accountID,
		CreditAmount: decimal.NewFromFloat(amount),
		RateToBase:   decimal.NewFromFloat(rate),
	}
}

func TestValidateEntryBalance_Balanced(t *testing.T) {
	tests := []struct {
		name  string
		lines []domain.JournalLine
	}{
		{
			name: "single currency pair",
			lines: []domain.JournalLine{
				debitLine("cash", 100, 1),
				creditLine("revenue", 100, 1),
			},
		},
		{
			name: "multi currency balanced after conversion",
			lines: []domain.JournalLine{
				debitLine("cash-usd", 100, 2500), // 250000 base
				creditLine("revenue", 250000, 1),
			},
		},
		{
			name: "split credit",
			lines: []domain.JournalLine{
				debitLine("cash", 300, 1),
				creditLine("revenue", 180, 1),
				creditLine("vat-payable", 120, 1),
			},
		},
		{
			name: "difference below epsilon",
			lines: []domain.JournalLine{
				debitLine("cash", 100.009, 1),
				creditLine("revenue", 100.00, 1),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, accounting.ValidateEntryBalance(tt.lines))
		})
	}
}

func TestValidateEntryBalance_Unbalanced(t *testing.T) {
	lines := []domain.JournalLine{
		debitLine("cash-usd", 100, 2500), // 250000 base
		creditLine("revenue", 100, 1),    // 100 base
	}

	err := accounting.ValidateEntryBalance(lines)
	require.Error(t, err)

	var unbalanced *apperrors.UnbalancedEntryError
	require.True(t, errors.As(err, &unbalanced))
	assert.True(t, decimal.NewFromInt(250000).Equal(unbalanced.Debits))
	assert.True(t, decimal.NewFromInt(100).Equal(unbalanced.Credits))
	assert.True(t, decimal.NewFromInt(249900).Equal(unbalanced.Difference))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateEntryBalance_EpsilonBoundary(t *testing.T) {
	// A difference of exactly 0.01 is outside tolerance.
	lines := []domain.JournalLine{
		debitLine("cash", 100.01, 1),
		creditLine("revenue", 100.00, 1),
	}
	err := accounting.ValidateEntryBalance(lines)
	require.Error(t, err)

	var unbalanced *apperrors.UnbalancedEntryError
	require.True(t, errors.As(err, &unbalanced))
	assert.True(t, decimal.NewFromFloat(0.01).Equal(unbalanced.Difference))
}

func TestValidateEntryBalance_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		lines []domain.JournalLine
	}{
		{
			name:  "fewer than two lines",
			lines: []domain.JournalLine{debitLine("cash", 100, 1)},
		},
		{
			name: "line with both sides set",
			lines: []domain.JournalLine{
				{AccountID: "cash", DebitAmount: decimal.NewFromInt(10), CreditAmount: decimal.NewFromInt(10), RateToBase: decimal.NewFromInt(1)},
				creditLine("revenue", 10, 1),
			},
		},
		{
			name: "line with neither side set",
			lines: []domain.JournalLine{
				{AccountID: "cash", RateToBase: decimal.NewFromInt(1)},
				creditLine("revenue", 10, 1),
			},
		},
		{
			name: "negative amount",
			lines: []domain.JournalLine{
				{AccountID: "cash", DebitAmount: decimal.NewFromInt(-5), RateToBase: decimal.NewFromInt(1)},
				creditLine("revenue", 5, 1),
			},
		},
		{
			name: "zero rate",
			lines: []domain.JournalLine{
				debitLine("cash", 100, 0),
				creditLine("revenue", 100, 1),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidateEntryBalance(tt.lines)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}
