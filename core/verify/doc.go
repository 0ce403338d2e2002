// Package verify implements the verification cache and matching engine for
// delivery reconciliation.
//
// A verification answers one question: does the store's external ledger table
// contain a row whose invoice reference AND supplier name both match the
// delivery? The two criteria are conjunctive; an invoice-only match is not
// enough, since different suppliers can share an invoice number.
//
// # Caching
//
// Because the answer requires a network call to a third-party tabular service,
// results are cached per (store, invoice reference, supplier) with a TTL.
// Positive results live longer than negative ones: a ledger row rarely
// disappears, but a "not found" may simply mean the row has not arrived yet.
//
// Concurrent lookups for the same key are collapsed into a single external
// call with singleflight; waiters share the outcome, failures included.
// Failed lookups are never written to the cache, so a transient outage cannot
// be remembered as a permanent "not found".
//
// # Stores
//
// Entries live in an EntryStore. The in-memory store is the default; the
// gorm-backed store persists the same fields to a verification_cache_entries
// table so operational tooling can inspect the cache.
package verify
