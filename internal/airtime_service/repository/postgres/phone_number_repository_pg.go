package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fening/airtime-gateway/internal/airtime_service/domain"
	"github.com/fening/airtime-gateway/internal/airtime_service/repository"
)

const (
	pgErrForeignKeyViolation = "23503"
	pgErrUndefinedTable      = "42P01"
)

type pgPhoneNumberRepository struct {
	logger *slog.Logger
}

// NewPgPhoneNumberRepository creates a PhoneNumberRepository backed by PostgreSQL.
func NewPgPhoneNumberRepository(logger *slog.Logger) repository.PhoneNumberRepository {
	return &pgPhoneNumberRepository{logger: logger.With("component", "phone_number_repository_pg")}
}

func (r *pgPhoneNumberRepository) Save(ctx context.Context, q repository.Querier, phoneNumber string) (*domain.PhoneNumberRecord, error) {
	query := `
		INSERT INTO phone_numbers (phone_number)
		VALUES ($1)
		ON CONFLICT (phone_number) DO NOTHING
		RETURNING id, phone_number, created_at
	`
	rec := &domain.PhoneNumberRecord{}
	err := q.QueryRow(ctx, query, phoneNumber).Scan(&rec.ID, &rec.PhoneNumber, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict path: the number already existed, nothing was inserted.
			r.logger.DebugContext(ctx, "Phone number already registered, insert ignored", "phone_number", phoneNumber)
			return nil, nil
		}
		return nil, translatePgError(err, "saving phone number")
	}
	return rec, nil
}

func (r *pgPhoneNumberRepository) FindByNumber(ctx context.Context, q repository.Querier, phoneNumber string) (*domain.PhoneNumberRecord, error) {
	query := `SELECT id, phone_number, created_at FROM phone_numbers WHERE phone_number = $1`
	rec := &domain.PhoneNumberRecord{}
	err := q.QueryRow(ctx, query, phoneNumber).Scan(&rec.ID, &rec.PhoneNumber, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translatePgError(err, "finding phone number")
	}
	return rec, nil
}

func (r *pgPhoneNumberRepository) GetAll(ctx context.Context, q repository.Querier) ([]domain.PhoneNumberRecord, error) {
	query := `SELECT id, phone_number, created_at FROM phone_numbers ORDER BY created_at DESC`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, translatePgError(err, "listing phone numbers")
	}
	defer rows.Close()

	var records []domain.PhoneNumberRecord
	for rows.Next() {
		var rec domain.PhoneNumberRecord
		if err := rows.Scan(&rec.ID, &rec.PhoneNumber, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning phone number row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phone number rows: %w", err)
	}
	return records, nil
}

// translatePgError maps PostgreSQL error codes onto the domain sentinels the
// service layer branches on. A missing relation (dropped or never-created
// schema) must be distinguishable from any other storage failure.
func translatePgError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrUndefinedTable:
			return fmt.Errorf("%s: %w", op, domain.ErrSchemaMissing)
		case pgErrForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, domain.ErrPhoneNumberNotRegistered)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
