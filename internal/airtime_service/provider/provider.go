package provider

import (
	"context"

	"github.com/shopspring/decimal"
)

// FixedAmount is the literal top-up amount sent with every request. It is
// owned by this layer; callers never supply an amount.
const FixedAmount = "10.00"

// Outcome classifies a provider response after normalization.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomePending Outcome = "pending"
	OutcomeFailed  Outcome = "failed"
)

// TopupResult is the normalized outcome of a top-up attempt. StatusCode is the
// provider's HTTP status, or 0 when no response was received at all.
type TopupResult struct {
	Outcome    Outcome
	Message    string
	Reference  string
	Balance    *decimal.Decimal
	StatusCode int
}

// TopupProvider issues an airtime top-up for a recipient. Implementations
// normalize every failure mode (connection errors, non-2xx statuses, malformed
// bodies, embedded failure flags) into a TopupResult; nothing panics past this
// boundary. The returned error carries detail for logging and is always
// accompanied by a non-nil result.
type TopupProvider interface {
	Topup(ctx context.Context, recipient string) (*TopupResult, error)
	Name() string
}
