// Package scoring implements the two business collaborators behind the
// gateway: the online score computation and the client interests lookup.
//
// Both are deterministic given the same inputs and store state. The score
// is cached per identity for an hour, best-effort; interests lookups are
// strict and fail when the store is unreachable.
package scoring
