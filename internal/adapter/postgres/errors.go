package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/puddle/v2"

	"github.com/heartmarshall/orgdirectory-backend/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped — they pass
// through so callers can tell an abandoned request from a store failure.
//
// 23503 (foreign_key_violation) maps to domain.ErrNotFound: on the insert
// paths that reach this function it means a referenced row is missing.
// Deletes restricted by a foreign key must go through MapDeleteError instead.
func MapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	// pgx.ErrNoRows → domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	if isUnavailable(err) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrUnavailable)
	}

	// Everything else: wrap with context
	return fmt.Errorf("%s %s: %w", entity, id, err)
}

// MapDeleteError is MapError for delete statements, where a
// foreign_key_violation means the row is still referenced (RESTRICT) and must
// surface as a conflict, not an absence.
func MapDeleteError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrConflict)
	}

	return MapError(err, entity, id)
}

// isUnavailable reports whether the error indicates the store cannot be
// reached at all (pool closed, acquire timed out, network failure) rather
// than a failure of the statement itself.
func isUnavailable(err error) bool {
	if errors.Is(err, puddle.ErrClosedPool) || errors.Is(err, puddle.ErrNotAvailable) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var connectErr *pgconn.ConnectError
	return errors.As(err, &connectErr)
}
