package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrConstraintViolation is returned when an insert breaks a uniqueness or
	// foreign key constraint. Existing rows are left untouched.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrStorageUnavailable wraps every other failure reported by the store.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

const (
	ConstraintUnique     = "unique"
	ConstraintForeignKey = "foreign_key"
)

// ConstraintError carries which kind of constraint an insert violated
type ConstraintError struct {
	Kind string
	Err  error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s constraint violated: %v", e.Kind, e.Err)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// Is lets callers match with errors.Is(err, ErrConstraintViolation)
func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraintViolation
}

// IsDuplicate reports whether err is a uniqueness violation
func IsDuplicate(err error) bool {
	var cErr *ConstraintError
	return errors.As(err, &cErr) && cErr.Kind == ConstraintUnique
}

// IsInvalidReference reports whether err is a foreign key violation
func IsInvalidReference(err error) bool {
	var cErr *ConstraintError
	return errors.As(err, &cErr) && cErr.Kind == ConstraintForeignKey
}

// translateError maps driver errors onto the repository taxonomy.
// Postgres reports SQLSTATE codes; SQLite errors are translated by GORM or, as a
// last resort, recognised by message.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}

	if kind := constraintKind(err); kind != "" {
		return &ConstraintError{Kind: kind, Err: fmt.Errorf("%s: %w", op, err)}
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}

func constraintKind(err error) string {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ConstraintUnique
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ConstraintForeignKey
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ConstraintUnique
		case "23503":
			return ConstraintForeignKey
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate"), strings.Contains(msg, "unique constraint"):
		return ConstraintUnique
	case strings.Contains(msg, "foreign key"):
		return ConstraintForeignKey
	}
	return ""
}
