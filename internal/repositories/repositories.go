// package repositories provides persistence layer implementations for the catalog.
package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/yap/internal/shared"
	"github.com/mattn/go-sqlite3"
)

// classify maps a go-sqlite3 failure from an insert or delete onto the shared error taxonomy.
//
// Uniqueness violations become dup; foreign key violations and anything else become fallback.
func classify(err error, dup, fallback error, subject string) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique:
			if dup != nil {
				return fmt.Errorf("%w: %s", dup, subject)
			}
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %s is still referenced: %v", fallback, subject, err)
		}
	}

	return fmt.Errorf("%w: %s: %v", fallback, subject, err)
}

// notFound converts [sql.ErrNoRows] into [shared.ErrNotFound].
func notFound(err error, subject string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, subject)
	}
	return fmt.Errorf("failed to scan %s: %w", subject, err)
}

// affected turns a zero-row result into [shared.ErrNotFound].
func affected(result sql.Result, subject string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, subject)
	}
	return nil
}
