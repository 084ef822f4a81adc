package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of an airtime transaction.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
	StatusCancelled TransactionStatus = "cancelled"
)

// Valid reports whether s is one of the enumerated statuses. Repositories must
// check this before interpolating a status into a statement.
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed from s.
// Only completed and failed set processed_at; cancelled exists in the schema
// but is never produced by the top-up flow.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// PhoneNumberRecord is one served phone number. At most one record exists per
// distinct number (unique constraint); once present the number is permanently
// ineligible for another top-up.
type PhoneNumberRecord struct {
	ID          int64     `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// AirtimeTransaction is one top-up attempt against a registered number.
type AirtimeTransaction struct {
	ID                   int64             `json:"id"`
	PhoneNumber          string            `json:"phone_number"`
	Amount               decimal.Decimal   `json:"amount"`
	Currency             string            `json:"currency"`
	Status               TransactionStatus `json:"status"`
	NetworkProvider      *string           `json:"network_provider,omitempty"`
	TransactionReference *string           `json:"transaction_reference,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
	ProcessedAt          *time.Time        `json:"processed_at,omitempty"`
}
