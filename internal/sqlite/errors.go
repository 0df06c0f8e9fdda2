package sqlite

import (
	"fmt"
	"strings"

	"github.com/ganot/roadmap/internal/repository"
)

// The driver reports constraint failures only through the message text,
// e.g. "constraint failed: UNIQUE constraint failed: api_keys.key_hash".
func constraintFailed(err error, kind string) bool {
	return err != nil && strings.Contains(err.Error(), kind+" constraint failed")
}

// wrapWriteError maps constraint failures of an INSERT to repository errors.
func wrapWriteError(msg string, err error) error {
	switch {
	case constraintFailed(err, "FOREIGN KEY"):
		return fmt.Errorf("%s: %w", msg, repository.ErrForeignKeyViolation)
	case constraintFailed(err, "UNIQUE"), constraintFailed(err, "PRIMARY KEY"):
		return fmt.Errorf("%s: %w", msg, repository.ErrConflict)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
