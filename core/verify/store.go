package verify

import (
	"context"
	"strings"
	"sync"
	"time"
)

// EntryStore is the storage contract for cache entries. Implementations must
// be safe for concurrent use. Get returns entries regardless of expiry;
// liveness is the cache's concern, so stores stay oblivious to TTL policy.
type EntryStore interface {
	// Get returns the entry for key. ok=false if absent.
	Get(ctx context.Context, key string) (*Entry, bool, error)
	// Put writes or overwrites the entry under its key.
	Put(ctx context.Context, e *Entry) error
	// DeleteAll removes every entry.
	DeleteAll(ctx context.Context) error
	// DeleteByStore removes every entry belonging to a store.
	DeleteByStore(ctx context.Context, storeID string) error
	// DeleteByInvoiceRef removes entries for (store, invoice reference)
	// across all cached supplier variants. Matching is case-insensitive,
	// mirroring key normalization.
	DeleteByInvoiceRef(ctx context.Context, storeID, invoiceRef string) error
	// PurgeExpired removes entries whose expiry is at or before now and
	// returns how many were removed.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// memoryStore is the default in-process entry store.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewMemoryStore creates an empty in-memory entry store.
func NewMemoryStore() EntryStore {
	return &memoryStore{entries: make(map[string]*Entry)}
}

func (s *memoryStore) Get(ctx context.Context, key string) (*Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e, ok, nil
}

func (s *memoryStore) Put(ctx context.Context, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.Key] = e
	return nil
}

func (s *memoryStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*Entry)
	return nil
}

func (s *memoryStore) DeleteByStore(ctx context.Context, storeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, e := range s.entries {
		if e.StoreID == storeID {
			delete(s.entries, key)
		}
	}
	return nil
}

func (s *memoryStore) DeleteByInvoiceRef(ctx context.Context, storeID, invoiceRef string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, e := range s.entries {
		if e.StoreID == storeID && strings.EqualFold(e.InvoiceRef, invoiceRef) {
			delete(s.entries, key)
		}
	}
	return nil
}

func (s *memoryStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var purged int64
	for key, e := range s.entries {
		if !e.Live(now) {
			delete(s.entries, key)
			purged++
		}
	}
	return purged, nil
}
