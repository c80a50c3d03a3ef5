package repository

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrExternalIDTaken = errors.New("external id is bound to another requester")
)

const (
	uniqueViolation = pq.ErrorCode("23505")

	bindingsExternalIDConstraint = "identity_bindings_external_id_key"
)

// isUniqueViolation reports whether err is a postgres unique violation,
// optionally restricted to one constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
