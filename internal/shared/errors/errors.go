package errors

import "errors"

// Domain errors
var (
	// Audit result errors
	ErrResultFrozen = errors.New("audit result is frozen")
	ErrNilEntry     = errors.New("check entry cannot be nil")

	// Auditor errors
	ErrAuditAlreadyRan = errors.New("auditor already ran; create a new auditor per invocation")
	ErrEmptyCatalog    = errors.New("audit catalog has no checksets")

	// Definition errors
	ErrEmptyProbeName   = errors.New("probe name cannot be empty")
	ErrEmptyTarget      = errors.New("probe target cannot be empty")
	ErrUnknownProbeKind = errors.New("unknown probe kind")

	// Report errors
	ErrNoEntries = errors.New("audit result has no entries")
)
