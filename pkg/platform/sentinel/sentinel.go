package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Ledger stores return these
// (optionally wrapped) so the service layer can translate them into domain
// errors with proper codes.
//
// These represent factual states about stored records, not validation
// failures:
// - ErrNotFound: key absent (or holding an empty value) in the ledger
// - ErrConflict: concurrent writer won the version race; caller may retry
// - ErrUnavailable: backing store temporarily unreachable
//
// For validation errors (bad input, malformed arguments), use
// pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
