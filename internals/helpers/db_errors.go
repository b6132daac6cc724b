package helper

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// Postgres SQLSTATE codes we care about.
const (
	pgUniqueViolation = "23505"
	pgFKViolation     = "23503"
)

// IsUniqueViolation detects a Postgres unique violation ("23505").
func IsUniqueViolation(err error) bool {
	return hasSQLState(err, pgUniqueViolation) ||
		containsAny(err, "duplicate key", "unique constraint", pgUniqueViolation)
}

// IsForeignKeyViolation detects an FK violation ("23503").
func IsForeignKeyViolation(err error) bool {
	return hasSQLState(err, pgFKViolation) ||
		containsAny(err, "foreign key constraint", pgFKViolation)
}

func hasSQLState(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}

// string fallback, compatible with wrapped lib/pq and pgx errors
func containsAny(err error, subs ...string) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
