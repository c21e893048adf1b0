// Package store provides the key-value backend consumed by the scoring
// collaborators.
//
// The contract is split in two: CacheGet/CacheSet are
// best-effort (a broken cache degrades to recomputing the score), while Get
// is strict (interests lookups fail loudly when the backend is unreachable).
//
// Three implementations are provided: Redis for production, Postgres for
// deployments that already run one, and an in-memory store for tests.
package store
