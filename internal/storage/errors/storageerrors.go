package storerrros

import "errors"

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrAuthorNotFound = errors.New("author not found")
	ErrMemberNotFound = errors.New("member not found")
	ErrLoanNotFound   = errors.New("loan not found")

	ErrEmptyLoansList = errors.New("empty loans list")

	// ErrConstraint replaces the raw driver error for foreign-key and
	// uniqueness violations; the driver text is logged, never surfaced.
	ErrConstraint = errors.New("related record does not exist or duplicate value")
)
