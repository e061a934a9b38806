package mapping

import (
	"github.com/bilgisen/bookshall-sub000/internal/core/domain"
	"github.com/bilgisen/bookshall-sub000/internal/models"
)

// ToDomainBalance converts a model UserBalance to a domain Balance
func ToDomainBalance(m models.UserBalance) domain.Balance {
	return domain.Balance{
		UserID:    m.UserID,
		Balance:   m.Balance,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToModelCreditTransaction converts a domain CreditTransaction to a model CreditTransaction.
// A nil metadata map is stored as an empty JSON object.
func ToModelCreditTransaction(d domain.CreditTransaction) models.CreditTransaction {
	metadata := map[string]any(d.Metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	return models.CreditTransaction{
		ID:        d.ID,
		UserID:    d.UserID,
		Type:      string(d.Type),
		Amount:    d.Amount,
		Reason:    d.Reason,
		Metadata:  metadata,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// ToDomainCreditTransaction converts a model CreditTransaction to a domain CreditTransaction
func ToDomainCreditTransaction(m models.CreditTransaction) domain.CreditTransaction {
	return domain.CreditTransaction{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      domain.TransactionType(m.Type),
		Amount:    m.Amount,
		Reason:    m.Reason,
		Metadata:  domain.Metadata(m.Metadata),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToDomainCreditTransactionSlice converts a slice of model CreditTransactions
func ToDomainCreditTransactionSlice(ms []models.CreditTransaction) []domain.CreditTransaction {
	ds := make([]domain.CreditTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCreditTransaction(m)
	}
	return ds
}
