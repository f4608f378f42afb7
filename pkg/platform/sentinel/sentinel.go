package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and upstream clients return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store
// - ErrUpstreamRateLimited: upstream registry rejected the call with a 429
// - ErrUnavailable: service or resource temporarily unavailable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound            = errors.New("not found")
	ErrUpstreamRateLimited = errors.New("upstream rate limited")
	ErrUnavailable         = errors.New("unavailable")
)
