package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var errNoTransaction = errors.New("advisory lock requires a transaction")

const uniqueViolation = "23505"

// wrapErr tags every store failure with database.ErrStoreUnavailable.
// Callers map domain outcomes (no rows, unique violation) before calling it.
func wrapErr(op string, err error) error {
	return database.Unavailable(op, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// validID guards uuid columns so a malformed path id reads as not found
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// inTransaction reports whether ctx carries a transaction from NewTransactor.
func inTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(pgx.Tx)
	return ok
}
