package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fening/airtime-gateway/internal/airtime_service/domain"
	"github.com/fening/airtime-gateway/internal/airtime_service/provider"
	"github.com/fening/airtime-gateway/internal/airtime_service/repository"
)

// ErrAlreadyServed indicates the recipient already received airtime; a number
// is served at most once, permanently.
var ErrAlreadyServed = errors.New("phone number already received airtime")

// TopupOutcome is what RequestTopup reports back to the transport layer when
// the flow ran to completion (including provider-side failures).
type TopupOutcome struct {
	Success            bool
	Message            string
	Recipient          string
	Amount             decimal.Decimal
	Reference          string
	Balance            *decimal.Decimal
	ProviderOutcome    provider.Outcome
	ProviderStatusCode int // provider HTTP status; 0 when no response was received
}

// TopupService orchestrates the top-up flow: duplicate check, reservation,
// transaction creation, provider call, terminal status update.
type TopupService struct {
	phoneRepo repository.PhoneNumberRepository
	txRepo    repository.TransactionRepository
	topup     provider.TopupProvider
	db        repository.Querier
	amount    decimal.Decimal
	logger    *slog.Logger
}

// NewTopupService creates a TopupService.
func NewTopupService(
	phoneRepo repository.PhoneNumberRepository,
	txRepo repository.TransactionRepository,
	topup provider.TopupProvider,
	db repository.Querier,
	logger *slog.Logger,
) *TopupService {
	return &TopupService{
		phoneRepo: phoneRepo,
		txRepo:    txRepo,
		topup:     topup,
		db:        db,
		amount:    decimal.RequireFromString(provider.FixedAmount),
		logger:    logger.With("service", "topup"),
	}
}

// RequestTopup serves one top-up request for recipient. The recipient has
// already passed shape validation at the transport boundary; whitespace is
// stripped here before any lookup.
//
// The number is reserved (insert-or-ignore) before the provider is contacted,
// so it stays ineligible even if the external call then fails. The pre-check
// read is advisory only; the unique constraint behind Save is the actual gate,
// and a nil row from Save after a nil pre-check means a concurrent request won
// the race.
func (s *TopupService) RequestTopup(ctx context.Context, recipient string) (*TopupOutcome, error) {
	recipient = stripWhitespace(recipient)

	existing, err := s.phoneRepo.FindByNumber(ctx, s.db, recipient)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.logger.InfoContext(ctx, "Top-up rejected, number already served", "recipient", recipient)
		topupsProcessedCounter.WithLabelValues(s.topup.Name(), "duplicate").Inc()
		return nil, ErrAlreadyServed
	}

	saved, err := s.phoneRepo.Save(ctx, s.db, recipient)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		s.logger.WarnContext(ctx, "Number registered between check and insert", "recipient", recipient)
		topupsProcessedCounter.WithLabelValues(s.topup.Name(), "duplicate").Inc()
		return nil, ErrAlreadyServed
	}

	tx, err := s.txRepo.Create(ctx, s.db, recipient, s.amount, nil)
	if err != nil {
		return nil, err
	}

	result, provErr := s.topup.Topup(ctx, recipient)
	if provErr != nil {
		s.logger.ErrorContext(ctx, "Provider top-up call failed", "error", provErr,
			"recipient", recipient, "transaction_id", tx.ID)
	}

	outcome := &TopupOutcome{
		Message:            result.Message,
		Recipient:          recipient,
		Amount:             s.amount,
		Reference:          result.Reference,
		Balance:            result.Balance,
		ProviderOutcome:    result.Outcome,
		ProviderStatusCode: result.StatusCode,
	}

	// Every exit path forces a terminal status; the row must never stay
	// pending. The update itself is best-effort bookkeeping: its failure is
	// logged and swallowed, and never changes the outcome already decided
	// from the provider response.
	if result.Outcome == provider.OutcomeSuccess {
		outcome.Success = true
		if outcome.Reference == "" {
			outcome.Reference = "internal-" + uuid.NewString()
		}
		s.finalize(ctx, tx.ID, domain.StatusCompleted, &outcome.Reference)
		topupsProcessedCounter.WithLabelValues(s.topup.Name(), "completed").Inc()
	} else {
		// A "pending" provider verdict is reported as a failure: this service
		// has no poller, so a transaction left non-terminal would stay pending
		// forever.
		s.finalize(ctx, tx.ID, domain.StatusFailed, nil)
		topupsProcessedCounter.WithLabelValues(s.topup.Name(), "failed").Inc()
		if outcome.Message == "" {
			outcome.Message = "Airtime top-up failed"
		}
	}
	return outcome, nil
}

// ListNumbers returns every served number, newest first.
func (s *TopupService) ListNumbers(ctx context.Context) ([]domain.PhoneNumberRecord, error) {
	return s.phoneRepo.GetAll(ctx, s.db)
}

// ListTransactions returns the transactions for a number, newest first.
func (s *TopupService) ListTransactions(ctx context.Context, phoneNumber string) ([]domain.AirtimeTransaction, error) {
	return s.txRepo.GetByPhoneNumber(ctx, s.db, stripWhitespace(phoneNumber))
}

func (s *TopupService) finalize(ctx context.Context, txID int64, status domain.TransactionStatus, reference *string) {
	if _, err := s.txRepo.UpdateStatus(ctx, s.db, txID, status, reference); err != nil {
		s.logger.ErrorContext(ctx, "Failed to finalize transaction status",
			"error", err, "transaction_id", txID, "status", status)
		statusUpdateFailuresCounter.Inc()
	}
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
