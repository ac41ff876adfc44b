package mapping

import (
	"database/sql"

	"github.com/mzigohq/accounting_backend/internal/core/domain"
	"github.com/mzigohq/accounting_backend/internal/models"
)

// ToModelBankAccount converts a domain BankAccount to its row model
func ToModelBankAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		BankAccountID:  d.BankAccountID,
		Name:           d.Name,
		BankName:       d.BankName,
		AccountNumber:  d.AccountNumber,
		CurrencyCode:   d.CurrencyCode,
		ChartAccountID: d.ChartAccountID,
		OpeningBalance: d.OpeningBalance,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankAccount converts a row model to a domain BankAccount
func ToDomainBankAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		BankAccountID:  m.BankAccountID,
		Name:           m.Name,
		BankName:       m.BankName,
		AccountNumber:  m.AccountNumber,
		CurrencyCode:   m.CurrencyCode,
		ChartAccountID: m.ChartAccountID,
		OpeningBalance: m.OpeningBalance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBankTransaction converts a domain BankTransaction to its row model
func ToModelBankTransaction(d domain.BankTransaction) models.BankTransaction {
	m := models.BankTransaction{
		TransactionID:   d.TransactionID,
		BankAccountID:   d.BankAccountID,
		TransactionDate: d.TransactionDate,
		Description:     d.Description,
		Reference:       NullString(d.Reference),
		DebitAmount:     d.DebitAmount,
		CreditAmount:    d.CreditAmount,
		IsReconciled:    d.IsReconciled,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
	if d.JournalEntryID != nil {
		m.JournalEntryID = sql.NullString{String: *d.JournalEntryID, Valid: true}
	}
	return m
}

// ToDomainBankTransaction converts a row model to a domain BankTransaction
func ToDomainBankTransaction(m models.BankTransaction) domain.BankTransaction {
	d := domain.BankTransaction{
		TransactionID:   m.TransactionID,
		BankAccountID:   m.BankAccountID,
		TransactionDate: m.TransactionDate,
		Description:     m.Description,
		Reference:       m.Reference.String,
		DebitAmount:     m.DebitAmount,
		CreditAmount:    m.CreditAmount,
		IsReconciled:    m.IsReconciled,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	if m.JournalEntryID.Valid {
		entryID := m.JournalEntryID.String
		d.JournalEntryID = &entryID
	}
	return d
}
