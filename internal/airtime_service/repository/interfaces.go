package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/fening/airtime-gateway/internal/airtime_service/domain"
)

// Querier is the common surface of *pgxpool.Pool and pgx.Tx that repository
// methods need. Tests substitute a pgxmock pool through it.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PhoneNumberRepository persists the served-number registry.
type PhoneNumberRepository interface {
	// Save inserts the number with insert-or-ignore semantics. It returns the
	// new record, or (nil, nil) when the number was already present. It never
	// errors on a duplicate; the unique constraint is the actual gate.
	Save(ctx context.Context, q Querier, phoneNumber string) (*domain.PhoneNumberRecord, error)
	// FindByNumber returns the record for an exact match, or (nil, nil) when absent.
	FindByNumber(ctx context.Context, q Querier, phoneNumber string) (*domain.PhoneNumberRecord, error)
	// GetAll returns every record, newest first.
	GetAll(ctx context.Context, q Querier) ([]domain.PhoneNumberRecord, error)
}

// TransactionRepository persists the airtime transaction log.
type TransactionRepository interface {
	// Create inserts a fresh pending transaction for phoneNumber. The number
	// must already exist in phone_numbers; a foreign key violation surfaces as
	// domain.ErrPhoneNumberNotRegistered.
	Create(ctx context.Context, q Querier, phoneNumber string, amount decimal.Decimal, networkProvider *string) (*domain.AirtimeTransaction, error)
	// UpdateStatus moves the transaction to status, setting processed_at only
	// on a transition into a terminal state. A non-nil reference overwrites the
	// stored one; nil preserves it. Out-of-set statuses are rejected with
	// domain.ErrInvalidStatus before any statement is built.
	UpdateStatus(ctx context.Context, q Querier, id int64, status domain.TransactionStatus, reference *string) (*domain.AirtimeTransaction, error)
	// GetByPhoneNumber returns the transactions for a number, newest first.
	GetByPhoneNumber(ctx context.Context, q Querier, phoneNumber string) ([]domain.AirtimeTransaction, error)
}
