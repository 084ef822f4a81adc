package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is the statement-execution surface of *pgxpool.Pool and pgx.Tx.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Statements are idempotent so the bootstrap can run on every startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS phone_numbers (
		id SERIAL PRIMARY KEY,
		phone_number VARCHAR(20) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT phone_number_unique UNIQUE (phone_number)
	)`,
	`CREATE TABLE IF NOT EXISTS airtime_transactions (
		id SERIAL PRIMARY KEY,
		phone_number VARCHAR(20) NOT NULL,
		amount DECIMAL(10, 2) NOT NULL,
		currency VARCHAR(10) DEFAULT 'NGN',
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		network_provider VARCHAR(50),
		transaction_reference VARCHAR(100),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
		processed_at TIMESTAMP WITH TIME ZONE,
		CONSTRAINT status_check CHECK (status IN ('pending', 'completed', 'failed', 'cancelled')),
		CONSTRAINT fk_phone_number FOREIGN KEY (phone_number) REFERENCES phone_numbers(phone_number)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_phone_numbers ON phone_numbers(phone_number)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_phone ON airtime_transactions(phone_number)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_status ON airtime_transactions(status)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON airtime_transactions(created_at)`,
}

// EnsureSchema creates the phone number registry and transaction log tables
// plus their indexes if they do not already exist.
func EnsureSchema(ctx context.Context, db Execer) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema statement: %w", err)
		}
	}
	return nil
}
