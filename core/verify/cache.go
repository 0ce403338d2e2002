package verify

import (
	"context"
	"strings"
	"time"

	"delivery-reconciler/core/ledger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cache is the verification cache: it maps a (store, invoice reference,
// supplier) triple to a cached verification outcome with expiry, computing
// fresh outcomes through the ledger client on miss.
type Cache struct {
	store  EntryStore
	client ledger.Client
	cfg    Config
	logger *zap.Logger
	sf     singleflight.Group
}

// NewCache creates a verification cache over the given entry store and
// ledger client. The TTL asymmetry (not-found < found) is enforced here.
func NewCache(store EntryStore, client ledger.Client, cfg Config, logger *zap.Logger) (*Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		store:  store,
		client: client,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// GetOrVerify returns the cached result for the query, or computes a fresh
// one via the ledger when no live entry exists. Concurrent calls for the same
// key share a single external lookup; all waiters receive the same outcome,
// failure included. Failed lookups are never cached.
func (c *Cache) GetOrVerify(ctx context.Context, tc TableConfig, q Query) (Result, error) {
	nq, err := normalizeQuery(q)
	if err != nil {
		return Result{}, err
	}
	key := cacheKey(nq)

	if res, ok := c.lookup(ctx, key); ok {
		return res, nil
	}

	v, err, shared := c.sf.Do(key, func() (any, error) {
		// Re-check after winning the flight: another caller may have
		// finished the compute while we queued.
		if res, ok := c.lookup(ctx, key); ok {
			return res, nil
		}

		rows, err := c.client.FetchRows(ctx, tc.TableID, tc.InvoiceColumn, nq.InvoiceRef)
		if err != nil {
			return nil, err
		}

		res := Evaluate(rows, tc.SupplierColumn, nq.Supplier)
		c.write(ctx, key, nq, res)
		return res, nil
	})
	if err != nil {
		return Result{}, err
	}
	if shared {
		c.logger.Debug("verification shared with in-flight lookup", zap.String("key", key))
	}
	return v.(Result), nil
}

// lookup returns a live cached result. Store errors degrade to a miss so a
// broken persistent store cannot block verification.
func (c *Cache) lookup(ctx context.Context, key string) (Result, bool) {
	e, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache read failed, treating as miss", zap.String("key", key), zap.Error(err))
		return Result{}, false
	}
	if !ok || !e.Live(time.Now()) {
		return Result{}, false
	}
	return e.Result, true
}

func (c *Cache) write(ctx context.Context, key string, q Query, res Result) {
	ttl := c.cfg.NotFoundTTL
	if res.Found {
		ttl = c.cfg.FoundTTL
	}

	now := res.EvaluatedAt
	entry := &Entry{
		Key:        key,
		StoreID:    q.StoreID,
		InvoiceRef: q.InvoiceRef,
		Supplier:   q.Supplier,
		Result:     res,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}

	// A write failure only costs a future cache miss; the computed result
	// is still returned to the caller.
	if err := c.store.Put(ctx, entry); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateAll removes every cached entry.
func (c *Cache) InvalidateAll(ctx context.Context) error {
	return c.store.DeleteAll(ctx)
}

// InvalidateStore removes every cached entry for a store. Invalidating a
// store with no entries is a no-op.
func (c *Cache) InvalidateStore(ctx context.Context, storeID string) error {
	return c.store.DeleteByStore(ctx, strings.TrimSpace(storeID))
}

// InvalidateInvoiceRef removes cached entries for (store, invoice reference)
// across all supplier variants cached under that pair.
func (c *Cache) InvalidateInvoiceRef(ctx context.Context, storeID, invoiceRef string) error {
	return c.store.DeleteByInvoiceRef(ctx, strings.TrimSpace(storeID), strings.TrimSpace(invoiceRef))
}

// PurgeExpired removes entries past their expiry and returns the count.
// Expiry is otherwise lazy (checked on read), so this is housekeeping only.
func (c *Cache) PurgeExpired(ctx context.Context) (int64, error) {
	return c.store.PurgeExpired(ctx, time.Now())
}
