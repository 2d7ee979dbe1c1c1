package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can decide policy: the resolution orchestrator treats a
// cache ErrNotFound the same as an unreachable cache, while the upload index
// surfaces ErrUnavailable to the caller.
//
// For validation failures use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
