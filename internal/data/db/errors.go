package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yungbote/yoshkaflow-backend/internal/domain/aggregates"
)

// MapError converts store errors into the aggregate taxonomy. Errors that
// already carry a code pass through untouched.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var aggErr *aggregates.Error
	if errors.As(err, &aggErr) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return aggregates.Wrap(aggregates.CodeNotFound, op, err)
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrCheckConstraintViolated):
		return aggregates.Wrap(aggregates.CodeValidation, op, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return aggregates.Wrap(aggregates.CodeConstraintViolation, op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return aggregates.Wrap(aggregates.CodeInternal, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505", "23502", "23514", "22001":
			return aggregates.Wrap(aggregates.CodeValidation, op, err) // unique/not_null/check/string_data_right_truncation
		case "23503":
			return aggregates.Wrap(aggregates.CodeConstraintViolation, op, err) // foreign_key_violation
		}
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "foreign key constraint"):
		return aggregates.Wrap(aggregates.CodeConstraintViolation, op, err)
	case strings.Contains(msg, "unique constraint"),
		strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "not null constraint"):
		return aggregates.Wrap(aggregates.CodeValidation, op, err)
	default:
		return aggregates.Wrap(aggregates.CodeInternal, op, err)
	}
}
