package verify

import (
	"fmt"
	"strings"
)

// keyDelimiter separates the key parts. Inputs containing it are rejected
// rather than escaped, so a crafted supplier name cannot collide with a
// different query's key.
const keyDelimiter = "|"

// normalizeQuery trims all fields and validates them. The returned query
// keeps the original casing; case folding happens only at the key layer and
// in the match evaluator, so the ledger filter is still issued with the
// verbatim invoice reference.
func normalizeQuery(q Query) (Query, error) {
	n := Query{
		StoreID:    strings.TrimSpace(q.StoreID),
		InvoiceRef: strings.TrimSpace(q.InvoiceRef),
		Supplier:   strings.TrimSpace(q.Supplier),
	}

	if n.StoreID == "" || n.InvoiceRef == "" || n.Supplier == "" {
		return Query{}, fmt.Errorf("%w: store, invoice reference and supplier are all required", ErrInvalidQuery)
	}
	for _, field := range []string{n.StoreID, n.InvoiceRef, n.Supplier} {
		if strings.Contains(field, keyDelimiter) {
			return Query{}, fmt.Errorf("%w: field %q contains the reserved delimiter %q", ErrInvalidQuery, field, keyDelimiter)
		}
	}

	return n, nil
}

// cacheKey derives the cache key from a normalized query. Invoice reference
// and supplier name are case-folded: ledger references are alphanumeric codes
// entered by hand, and inconsistent casing in source data must not cause
// spurious misses.
func cacheKey(q Query) string {
	return q.StoreID + keyDelimiter + strings.ToLower(q.InvoiceRef) + keyDelimiter + strings.ToLower(q.Supplier)
}
