package verify

import (
	"context"
	"testing"
	"time"

	"delivery-reconciler/core/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGormStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	store, err := NewGormStore(db)
	require.NoError(t, err)
	return store
}

func TestGormStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Put Get Roundtrip", func(t *testing.T) {
		s := newGormStore(t)
		e := sampleEntry("k1", "Houdemont", "F5162713", "JJA Five", true, time.Hour)
		require.NoError(t, s.Put(ctx, e))

		got, ok, err := s.Get(ctx, "k1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, got.Result.Found)
		assert.Equal(t, "JJA Five", got.Result.MatchedRow["Fournisseurs"])
		assert.Equal(t, "Houdemont", got.StoreID)
		assert.Equal(t, "F5162713", got.InvoiceRef)
	})

	t.Run("Get Missing", func(t *testing.T) {
		s := newGormStore(t)
		_, ok, err := s.Get(ctx, "nothing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Overwrite By Key", func(t *testing.T) {
		s := newGormStore(t)
		require.NoError(t, s.Put(ctx, sampleEntry("k1", "Houdemont", "F1", "A", false, time.Minute)))
		require.NoError(t, s.Put(ctx, sampleEntry("k1", "Houdemont", "F1", "A", true, time.Hour)))

		got, ok, err := s.Get(ctx, "k1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, got.Result.Found)
	})

	t.Run("Not Found Entry Has No Payload", func(t *testing.T) {
		s := newGormStore(t)
		require.NoError(t, s.Put(ctx, sampleEntry("k1", "Houdemont", "F1", "A", false, time.Minute)))

		got, ok, err := s.Get(ctx, "k1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.False(t, got.Result.Found)
		assert.Nil(t, got.Result.MatchedRow)
	})

	t.Run("Delete Scopes", func(t *testing.T) {
		s := newGormStore(t)
		require.NoError(t, s.Put(ctx, sampleEntry("k1", "Houdemont", "F5162713", "A", true, time.Hour)))
		require.NoError(t, s.Put(ctx, sampleEntry("k2", "Houdemont", "F5162713", "B", false, time.Hour)))
		require.NoError(t, s.Put(ctx, sampleEntry("k3", "Houdemont", "F999", "A", true, time.Hour)))
		require.NoError(t, s.Put(ctx, sampleEntry("k4", "Frouard", "F5162713", "A", true, time.Hour)))

		// Case-insensitive invoice scope, all supplier variants.
		require.NoError(t, s.DeleteByInvoiceRef(ctx, "Houdemont", "f5162713"))
		_, ok, _ := s.Get(ctx, "k1")
		assert.False(t, ok)
		_, ok, _ = s.Get(ctx, "k2")
		assert.False(t, ok)
		_, ok, _ = s.Get(ctx, "k3")
		assert.True(t, ok)
		_, ok, _ = s.Get(ctx, "k4")
		assert.True(t, ok)

		require.NoError(t, s.DeleteByStore(ctx, "Frouard"))
		_, ok, _ = s.Get(ctx, "k4")
		assert.False(t, ok)

		require.NoError(t, s.DeleteAll(ctx))
		_, ok, _ = s.Get(ctx, "k3")
		assert.False(t, ok)
	})

	t.Run("Purge Expired", func(t *testing.T) {
		s := newGormStore(t)
		require.NoError(t, s.Put(ctx, sampleEntry("live", "S", "F1", "A", true, time.Hour)))
		require.NoError(t, s.Put(ctx, sampleEntry("dead", "S", "F2", "A", false, -time.Minute)))

		purged, err := s.PurgeExpired(ctx, time.Now())
		require.NoError(t, err)
		assert.EqualValues(t, 1, purged)

		_, ok, _ := s.Get(ctx, "live")
		assert.True(t, ok)
	})
}
