package provider

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// MockTopupProvider simulates top-ups without any network call. Non-production
// configurations use it so the flow can be exercised end to end; tests use it
// to force failures.
type MockTopupProvider struct {
	logger         *slog.Logger
	FailTopup      bool          // simulate a provider-side failure
	SimulatedDelay time.Duration // simulate network latency
}

// NewMockTopupProvider creates a MockTopupProvider.
func NewMockTopupProvider(logger *slog.Logger) *MockTopupProvider {
	return &MockTopupProvider{logger: logger.With("provider", "mock")}
}

// Topup simulates an immediate top-up. The reference is deterministic for a
// given recipient so repeated simulated runs are comparable.
func (p *MockTopupProvider) Topup(ctx context.Context, recipient string) (*TopupResult, error) {
	if p.SimulatedDelay > 0 {
		select {
		case <-time.After(p.SimulatedDelay):
		case <-ctx.Done():
			return &TopupResult{Outcome: OutcomeFailed, Message: "simulated request cancelled"}, ctx.Err()
		}
	}

	if p.FailTopup {
		p.logger.WarnContext(ctx, "MockTopupProvider: simulated failure", "recipient", recipient)
		return &TopupResult{
			Outcome: OutcomeFailed,
			Message: "simulated provider failure",
		}, errors.New("mock provider simulated failure")
	}

	reference := "mock-" + recipient
	p.logger.InfoContext(ctx, "MockTopupProvider: top-up simulated", "recipient", recipient, "reference", reference)
	return &TopupResult{
		Outcome:   OutcomeSuccess,
		Message:   "Airtime sent successfully (simulated)",
		Reference: reference,
	}, nil
}

func (p *MockTopupProvider) Name() string {
	return "mock"
}
