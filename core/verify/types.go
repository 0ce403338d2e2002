package verify

import (
	"time"

	"delivery-reconciler/core/ledger"
)

// Query identifies a single verification: does this store's ledger contain
// this invoice reference for this supplier?
type Query struct {
	// StoreID identifies the store whose ledger table is consulted.
	StoreID string
	// InvoiceRef is the invoice reference printed on the delivery note.
	InvoiceRef string
	// Supplier is the supplier name as recorded on the delivery.
	Supplier string
}

// TableConfig is the resolved per-store ledger binding: which external table
// to query and which columns carry the invoice reference and supplier name.
type TableConfig struct {
	TableID        string
	InvoiceColumn  string
	SupplierColumn string
}

// Result is the outcome of a verification.
type Result struct {
	// Found reports whether a row matched on both criteria.
	Found bool `json:"found"`
	// MatchedRow is the first matching ledger row, kept for diagnostics.
	// Nil when Found is false.
	MatchedRow ledger.Row `json:"matched_row,omitempty"`
	// EvaluatedAt is when the match was computed.
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// Entry is a cached verification outcome. Entries are immutable once written;
// a re-verification overwrites by key, never mutates in place.
type Entry struct {
	Key        string
	StoreID    string
	InvoiceRef string
	Supplier   string
	Result     Result
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// Live reports whether the entry is still trusted at the given time.
func (e *Entry) Live(now time.Time) bool {
	return now.Before(e.ExpiresAt)
}
