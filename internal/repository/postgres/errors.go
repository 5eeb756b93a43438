// internal/repository/postgres/errors.go
package postgres

import (
	"errors"

	xerrors "insuremate-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes we translate into application errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// translateErr maps driver errors onto the application sentinels. Unique
// violations (including two writers racing on the same number) become
// duplicate-entry errors; foreign-key violations mean the referenced parent
// does not exist and are reported as invalid input.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return xerrors.Wrap(xerrors.ErrDuplicateEntry, pgErr.ConstraintName)
		case codeForeignKeyViolation:
			return xerrors.Wrap(xerrors.ErrInvalidInput, "referenced record does not exist")
		}
	}
	return err
}
