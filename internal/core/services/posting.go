package services

import (
	"github.com/finbook/finbook_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingPolicy decides when a transaction's effect is applied to its
// account balance.
type PostingPolicy int

const (
	// PostImmediately posts every transaction's effect at write time,
	// regardless of status.
	PostImmediately PostingPolicy = iota
	// PostWhenSettled posts only transactions whose status marks money as
	// actually moved (paid or received).
	PostWhenSettled
)

// Counts reports whether txn contributes to its account balance under p.
func (p PostingPolicy) Counts(txn domain.Transaction) bool {
	if p == PostImmediately {
		return true
	}
	return txn.Status.Settled()
}

// signedEffect is the balance impact of a transaction on its account:
// positive for income, negative for expense.
func signedEffect(txn domain.Transaction) decimal.Decimal {
	if txn.Type == domain.Income {
		return txn.Amount
	}
	return txn.Amount.Neg()
}

func addDelta(changes map[string]decimal.Decimal, accountID string, d decimal.Decimal) {
	if cur, ok := changes[accountID]; ok {
		changes[accountID] = cur.Add(d)
	} else {
		changes[accountID] = d
	}
}

// CreateDeltas computes the per-account balance changes for recording txn.
func (p PostingPolicy) CreateDeltas(txn domain.Transaction) map[string]decimal.Decimal {
	changes := make(map[string]decimal.Decimal)
	if p.Counts(txn) {
		addDelta(changes, txn.AccountID, signedEffect(txn))
	}
	return changes
}

// UpdateDeltas computes the per-account balance changes for replacing old
// with updated: the counted old effect is reversed on the old account and
// the counted new effect applied to the new one. When both hit the same
// account the map nets them algebraically.
func (p PostingPolicy) UpdateDeltas(old, updated domain.Transaction) map[string]decimal.Decimal {
	changes := make(map[string]decimal.Decimal)
	if p.Counts(old) {
		addDelta(changes, old.AccountID, signedEffect(old).Neg())
	}
	if p.Counts(updated) {
		addDelta(changes, updated.AccountID, signedEffect(updated))
	}
	return changes
}

// DeleteDeltas computes the per-account balance changes for removing txn.
func (p PostingPolicy) DeleteDeltas(txn domain.Transaction) map[string]decimal.Decimal {
	changes := make(map[string]decimal.Decimal)
	if p.Counts(txn) {
		addDelta(changes, txn.AccountID, signedEffect(txn).Neg())
	}
	return changes
}
