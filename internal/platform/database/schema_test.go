package database

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSchemaExecutesAllStatements(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectExec(`CREATE TABLE IF NOT EXISTS phone_numbers`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mockPool.ExpectExec(`CREATE TABLE IF NOT EXISTS airtime_transactions`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	for i := 0; i < 4; i++ {
		mockPool.ExpectExec(`CREATE INDEX IF NOT EXISTS`).
			WillReturnResult(pgxmock.NewResult("CREATE", 0))
	}

	require.NoError(t, EnsureSchema(context.Background(), mockPool))
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestEnsureSchemaStopsOnFirstError(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectExec(`CREATE TABLE IF NOT EXISTS phone_numbers`).
		WillReturnError(errors.New("permission denied"))

	err = EnsureSchema(context.Background(), mockPool)
	require.Error(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
