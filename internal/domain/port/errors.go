package port

import "errors"

// Error taxonomy shared by all storage adapters and use cases.
//
// Audit and notification failures are deliberately absent: those sinks are
// ignorable by contract and never propagate errors into the ledger path.
var (
	// ErrNotFound indicates a borrower, loan, or application does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a request that cannot be processed
	// (non-positive amounts, missing identifiers, wrong status).
	ErrInvalidInput = errors.New("invalid input")

	// ErrVersionConflict indicates an optimistic-concurrency clash on an
	// aggregate's version column. Callers may reload and retry.
	ErrVersionConflict = errors.New("version conflict")
)
