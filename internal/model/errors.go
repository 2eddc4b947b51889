package model

import "errors"

// Engine error taxonomy. Callers branch with errors.Is; everything else is
// wrapped transport/storage failure.
var (
	// ErrValidation marks malformed or empty input to a scoring function.
	// It is surfaced synchronously, never silently scored as zero.
	ErrValidation = errors.New("validation failed")

	// ErrModelUnavailable marks an unreachable or unconfigured embedding
	// provider. Ranking fails closed with an empty result when it occurs.
	ErrModelUnavailable = errors.New("embedding model unavailable")

	// ErrPrecondition marks a lifecycle transition attempted on a claim or
	// report that is not in the required state. State is left unchanged.
	ErrPrecondition = errors.New("precondition failed")

	// ErrUnauthorized marks an operation attempted by someone other than
	// the report owner.
	ErrUnauthorized = errors.New("not authorized")

	// ErrNotFound marks a missing report or claim.
	ErrNotFound = errors.New("not found")
)
