package verify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeQuery(t *testing.T) {
	t.Run("Trims Fields", func(t *testing.T) {
		q, err := normalizeQuery(Query{
			StoreID:    " Houdemont ",
			InvoiceRef: " F5162713 ",
			Supplier:   "  JJA Five ",
		})
		require.NoError(t, err)
		assert.Equal(t, "Houdemont", q.StoreID)
		assert.Equal(t, "F5162713", q.InvoiceRef)
		assert.Equal(t, "JJA Five", q.Supplier)
	})

	t.Run("Rejects Empty", func(t *testing.T) {
		tests := []Query{
			{StoreID: "", InvoiceRef: "F1", Supplier: "A"},
			{StoreID: "S", InvoiceRef: "   ", Supplier: "A"},
			{StoreID: "S", InvoiceRef: "F1", Supplier: ""},
		}
		for _, q := range tests {
			_, err := normalizeQuery(q)
			assert.True(t, errors.Is(err, ErrInvalidQuery))
		}
	})

	t.Run("Rejects Delimiter", func(t *testing.T) {
		_, err := normalizeQuery(Query{StoreID: "S", InvoiceRef: "F1|2", Supplier: "A"})
		assert.True(t, errors.Is(err, ErrInvalidQuery))
	})
}

func TestCacheKey(t *testing.T) {
	base, err := normalizeQuery(Query{StoreID: "Houdemont", InvoiceRef: "F5162713", Supplier: "JJA Five"})
	require.NoError(t, err)

	t.Run("Supplier Case Insensitive", func(t *testing.T) {
		other, err := normalizeQuery(Query{StoreID: "Houdemont", InvoiceRef: "F5162713", Supplier: " jja five "})
		require.NoError(t, err)
		assert.Equal(t, cacheKey(base), cacheKey(other))
	})

	t.Run("Invoice Case Insensitive", func(t *testing.T) {
		other, err := normalizeQuery(Query{StoreID: "Houdemont", InvoiceRef: "f5162713", Supplier: "JJA Five"})
		require.NoError(t, err)
		assert.Equal(t, cacheKey(base), cacheKey(other))
	})

	t.Run("Store Distinguishes", func(t *testing.T) {
		other, err := normalizeQuery(Query{StoreID: "Frouard", InvoiceRef: "F5162713", Supplier: "JJA Five"})
		require.NoError(t, err)
		assert.NotEqual(t, cacheKey(base), cacheKey(other))
	})

	t.Run("Supplier Distinguishes", func(t *testing.T) {
		// Conjunctive criteria are cached per-supplier so one supplier's
		// positive result cannot poison another's lookup.
		other, err := normalizeQuery(Query{StoreID: "Houdemont", InvoiceRef: "F5162713", Supplier: "Metro"})
		require.NoError(t, err)
		assert.NotEqual(t, cacheKey(base), cacheKey(other))
	})
}
