package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fening/airtime-gateway/internal/airtime_service/domain"
	"github.com/fening/airtime-gateway/internal/airtime_service/repository"
)

type pgTransactionRepository struct {
	logger *slog.Logger
}

// NewPgTransactionRepository creates a TransactionRepository backed by PostgreSQL.
func NewPgTransactionRepository(logger *slog.Logger) repository.TransactionRepository {
	return &pgTransactionRepository{logger: logger.With("component", "transaction_repository_pg")}
}

func (r *pgTransactionRepository) Create(ctx context.Context, q repository.Querier, phoneNumber string, amount decimal.Decimal, networkProvider *string) (*domain.AirtimeTransaction, error) {
	query := `
		INSERT INTO airtime_transactions (phone_number, amount, network_provider)
		VALUES ($1, $2, $3)
		RETURNING id, phone_number, amount, currency, status, network_provider,
		          transaction_reference, created_at, processed_at
	`
	tx := &domain.AirtimeTransaction{}
	err := q.QueryRow(ctx, query, phoneNumber, amount, networkProvider).Scan(
		&tx.ID, &tx.PhoneNumber, &tx.Amount, &tx.Currency, &tx.Status,
		&tx.NetworkProvider, &tx.TransactionReference, &tx.CreatedAt, &tx.ProcessedAt,
	)
	if err != nil {
		return nil, translatePgError(err, "creating airtime transaction")
	}
	return tx, nil
}

func (r *pgTransactionRepository) UpdateStatus(ctx context.Context, q repository.Querier, id int64, status domain.TransactionStatus, reference *string) (*domain.AirtimeTransaction, error) {
	// The status value feeds a data-layer statement; reject anything outside
	// the enumerated set before building it.
	if !status.Valid() {
		return nil, fmt.Errorf("status %q: %w", status, domain.ErrInvalidStatus)
	}

	query := `
		UPDATE airtime_transactions
		SET status = $2,
		    transaction_reference = COALESCE($3, transaction_reference),
		    processed_at = CASE WHEN $2 IN ('completed', 'failed') THEN NOW() ELSE processed_at END
		WHERE id = $1
		RETURNING id, phone_number, amount, currency, status, network_provider,
		          transaction_reference, created_at, processed_at
	`
	tx := &domain.AirtimeTransaction{}
	err := q.QueryRow(ctx, query, id, status, reference).Scan(
		&tx.ID, &tx.PhoneNumber, &tx.Amount, &tx.Currency, &tx.Status,
		&tx.NetworkProvider, &tx.TransactionReference, &tx.CreatedAt, &tx.ProcessedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("updating transaction %d: %w", id, domain.ErrNotFound)
		}
		return nil, translatePgError(err, "updating transaction status")
	}
	return tx, nil
}

func (r *pgTransactionRepository) GetByPhoneNumber(ctx context.Context, q repository.Querier, phoneNumber string) ([]domain.AirtimeTransaction, error) {
	query := `
		SELECT id, phone_number, amount, currency, status, network_provider,
		       transaction_reference, created_at, processed_at
		FROM airtime_transactions
		WHERE phone_number = $1
		ORDER BY created_at DESC
	`
	rows, err := q.Query(ctx, query, phoneNumber)
	if err != nil {
		return nil, translatePgError(err, "listing transactions")
	}
	defer rows.Close()

	var transactions []domain.AirtimeTransaction
	for rows.Next() {
		var tx domain.AirtimeTransaction
		err := rows.Scan(
			&tx.ID, &tx.PhoneNumber, &tx.Amount, &tx.Currency, &tx.Status,
			&tx.NetworkProvider, &tx.TransactionReference, &tx.CreatedAt, &tx.ProcessedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction row: %w", err)
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}
	return transactions, nil
}
