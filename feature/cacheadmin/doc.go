// Package cacheadmin exposes administration endpoints for the verification
// cache: full flush, per-store and per-invoice invalidation, and an on-demand
// sweep of expired entries.
//
// Invalidation is the operational answer to ledger corrections: a cached
// not-found sticks until its TTL passes, so fixing a ledger row is followed by
// flushing the affected scope.
package cacheadmin
