package domain_test

import (
	"testing"

	"github.com/finbook/finbook_api/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestTransactionStatus_Settled(t *testing.T) {
	tests := []struct {
		name   string
		status domain.TransactionStatus
		want   bool
	}{
		{name: "pending is not settled", status: domain.StatusPending, want: false},
		{name: "paid is settled", status: domain.StatusPaid, want: true},
		{name: "received is settled", status: domain.StatusReceived, want: true},
		{name: "cancelled is not settled", status: domain.StatusCancelled, want: false},
		{name: "empty status is not settled", status: domain.TransactionStatus(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Settled())
		})
	}
}

func TestTransactionStatus_Valid(t *testing.T) {
	for _, status := range []domain.TransactionStatus{
		domain.StatusPending, domain.StatusPaid, domain.StatusReceived, domain.StatusCancelled,
	} {
		assert.True(t, status.Valid(), "status %s", status)
	}

	assert.False(t, domain.TransactionStatus("").Valid())
	assert.False(t, domain.TransactionStatus("SETTLED").Valid())
	assert.False(t, domain.TransactionStatus("paid").Valid(), "statuses are case sensitive")
}
