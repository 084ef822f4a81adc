package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionStatusValid(t *testing.T) {
	for _, s := range []TransactionStatus{StatusPending, StatusCompleted, StatusFailed, StatusCancelled} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, TransactionStatus("refunded").Valid())
	assert.False(t, TransactionStatus("").Valid())
	assert.False(t, TransactionStatus("COMPLETED").Valid())
}

func TestTransactionStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusCancelled.IsTerminal())
}
