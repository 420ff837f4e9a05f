package services_test

import (
	"testing"

	"github.com/finbook/finbook_api/internal/core/domain"
	"github.com/finbook/finbook_api/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func expense(accountID string, amount string, status domain.TransactionStatus) domain.Transaction {
	return domain.Transaction{
		AccountID: accountID,
		Amount:    decimal.RequireFromString(amount),
		Type:      domain.Expense,
		Status:    status,
	}
}

func income(accountID string, amount string, status domain.TransactionStatus) domain.Transaction {
	txn := expense(accountID, amount, status)
	txn.Type = domain.Income
	return txn
}

func TestCounts_ImmediatePostsRegardlessOfStatus(t *testing.T) {
	for _, status := range []domain.TransactionStatus{
		domain.StatusPending, domain.StatusPaid, domain.StatusReceived, domain.StatusCancelled,
	} {
		assert.True(t, services.PostImmediately.Counts(expense("a1", "10", status)), "status %s", status)
	}
}

func TestCounts_SettledGatesOnStatus(t *testing.T) {
	assert.True(t, services.PostWhenSettled.Counts(expense("a1", "10", domain.StatusPaid)))
	assert.True(t, services.PostWhenSettled.Counts(income("a1", "10", domain.StatusReceived)))
	assert.False(t, services.PostWhenSettled.Counts(expense("a1", "10", domain.StatusPending)))
	assert.False(t, services.PostWhenSettled.Counts(expense("a1", "10", domain.StatusCancelled)))
}

func TestCreateDeltas_SignFollowsType(t *testing.T) {
	deltas := services.PostImmediately.CreateDeltas(income("a1", "150.25", domain.StatusPaid))
	assert.True(t, deltas["a1"].Equal(decimal.RequireFromString("150.25")))

	deltas = services.PostImmediately.CreateDeltas(expense("a1", "99.99", domain.StatusPaid))
	assert.True(t, deltas["a1"].Equal(decimal.RequireFromString("-99.99")))
}

func TestCreateDeltas_PendingAgendaEntryHasNoEffect(t *testing.T) {
	deltas := services.PostWhenSettled.CreateDeltas(expense("a1", "100", domain.StatusPending))
	assert.Empty(t, deltas)
}

func TestUpdateDeltas_AmountChangeNetsOnSameAccount(t *testing.T) {
	old := expense("a1", "100", domain.StatusPaid)
	updated := expense("a1", "40", domain.StatusPaid)

	// Reversing -100 and applying -40 leaves a net +60.
	deltas := services.PostImmediately.UpdateDeltas(old, updated)
	assert.Len(t, deltas, 1)
	assert.True(t, deltas["a1"].Equal(decimal.RequireFromString("60")))
}

func TestUpdateDeltas_AccountMoveConservesTotal(t *testing.T) {
	old := expense("a1", "100", domain.StatusPaid)
	updated := expense("a2", "100", domain.StatusPaid)

	deltas := services.PostImmediately.UpdateDeltas(old, updated)
	assert.True(t, deltas["a1"].Equal(decimal.RequireFromString("100")))
	assert.True(t, deltas["a2"].Equal(decimal.RequireFromString("-100")))

	total := decimal.Zero
	for _, d := range deltas {
		total = total.Add(d)
	}
	assert.True(t, total.IsZero())
}

func TestUpdateDeltas_SettlementPostsExactlyOnce(t *testing.T) {
	pending := expense("a1", "75", domain.StatusPending)
	paid := expense("a1", "75", domain.StatusPaid)

	// Pending -> paid applies the effect.
	deltas := services.PostWhenSettled.UpdateDeltas(pending, paid)
	assert.True(t, deltas["a1"].Equal(decimal.RequireFromString("-75")))

	// Paid -> paid (no-op edit) nets to zero.
	deltas = services.PostWhenSettled.UpdateDeltas(paid, paid)
	assert.True(t, deltas["a1"].IsZero())

	// Paid -> cancelled reverses it.
	cancelled := expense("a1", "75", domain.StatusCancelled)
	deltas = services.PostWhenSettled.UpdateDeltas(paid, cancelled)
	assert.True(t, deltas["a1"].Equal(decimal.RequireFromString("75")))
}

func TestUpdateDeltas_TypeFlipDoublesEffect(t *testing.T) {
	old := expense("a1", "50", domain.StatusPaid)
	updated := income("a1", "50", domain.StatusPaid)

	deltas := services.PostImmediately.UpdateDeltas(old, updated)
	assert.True(t, deltas["a1"].Equal(decimal.RequireFromString("100")))
}

func TestDeleteDeltas_ReversesCountedEffectOnly(t *testing.T) {
	deltas := services.PostImmediately.DeleteDeltas(income("a1", "30", domain.StatusPaid))
	assert.True(t, deltas["a1"].Equal(decimal.RequireFromString("-30")))

	deltas = services.PostWhenSettled.DeleteDeltas(income("a1", "30", domain.StatusPending))
	assert.Empty(t, deltas)
}
