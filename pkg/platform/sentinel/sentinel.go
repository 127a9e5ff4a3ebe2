package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and clients return these
// (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in the current snapshot
// - ErrStaleEpoch: a replacement carried an older epoch than the live snapshot
// - ErrUnavailable: upstream service temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrStaleEpoch  = errors.New("stale epoch")
	ErrUnavailable = errors.New("unavailable")
)
