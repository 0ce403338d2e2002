package verify

import (
	"context"
	"testing"
	"time"

	"delivery-reconciler/core/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntry(key, storeID, invoiceRef, supplier string, found bool, ttl time.Duration) *Entry {
	now := time.Now()
	var row ledger.Row
	if found {
		row = ledger.Row{"Fournisseurs": supplier}
	}
	return &Entry{
		Key:        key,
		StoreID:    storeID,
		InvoiceRef: invoiceRef,
		Supplier:   supplier,
		Result:     Result{Found: found, MatchedRow: row, EvaluatedAt: now},
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Put Get", func(t *testing.T) {
		s := NewMemoryStore()
		e := sampleEntry("k1", "Houdemont", "F1", "JJA Five", true, time.Hour)
		require.NoError(t, s.Put(ctx, e))

		got, ok, err := s.Get(ctx, "k1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, e.Result.Found, got.Result.Found)

		_, ok, err = s.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Overwrite By Key", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Put(ctx, sampleEntry("k1", "Houdemont", "F1", "A", false, time.Minute)))
		require.NoError(t, s.Put(ctx, sampleEntry("k1", "Houdemont", "F1", "A", true, time.Hour)))

		got, ok, err := s.Get(ctx, "k1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, got.Result.Found)
	})

	t.Run("Delete By Store", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Put(ctx, sampleEntry("k1", "Houdemont", "F1", "A", true, time.Hour)))
		require.NoError(t, s.Put(ctx, sampleEntry("k2", "Frouard", "F1", "A", true, time.Hour)))

		require.NoError(t, s.DeleteByStore(ctx, "Houdemont"))

		_, ok, _ := s.Get(ctx, "k1")
		assert.False(t, ok)
		_, ok, _ = s.Get(ctx, "k2")
		assert.True(t, ok)
	})

	t.Run("Delete By Invoice Ref Case Insensitive", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Put(ctx, sampleEntry("k1", "Houdemont", "F5162713", "A", true, time.Hour)))
		require.NoError(t, s.Put(ctx, sampleEntry("k2", "Houdemont", "F5162713", "B", false, time.Hour)))
		require.NoError(t, s.Put(ctx, sampleEntry("k3", "Houdemont", "F999", "A", true, time.Hour)))

		require.NoError(t, s.DeleteByInvoiceRef(ctx, "Houdemont", "f5162713"))

		_, ok, _ := s.Get(ctx, "k1")
		assert.False(t, ok)
		_, ok, _ = s.Get(ctx, "k2")
		assert.False(t, ok, "all supplier variants under the pair are removed")
		_, ok, _ = s.Get(ctx, "k3")
		assert.True(t, ok)
	})

	t.Run("Purge Expired", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Put(ctx, sampleEntry("live", "S", "F1", "A", true, time.Hour)))
		require.NoError(t, s.Put(ctx, sampleEntry("dead", "S", "F2", "A", true, -time.Minute)))

		purged, err := s.PurgeExpired(ctx, time.Now())
		require.NoError(t, err)
		assert.EqualValues(t, 1, purged)

		_, ok, _ := s.Get(ctx, "live")
		assert.True(t, ok)
		_, ok, _ = s.Get(ctx, "dead")
		assert.False(t, ok)
	})
}
