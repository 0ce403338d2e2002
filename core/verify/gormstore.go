package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"delivery-reconciler/core/ledger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CacheEntryRecord is the persisted shape of a cache entry. Keeping the raw
// payload as JSON text lets operational tooling inspect what matched without
// the schema chasing ledger columns.
type CacheEntryRecord struct {
	Key         string    `gorm:"column:cache_key;primaryKey;size:768"`
	StoreID     string    `gorm:"column:store_id;index"`
	InvoiceRef  string    `gorm:"column:invoice_reference;index"`
	Supplier    string    `gorm:"column:supplier_name"`
	Found       bool      `gorm:"column:found"`
	RawPayload  string    `gorm:"column:raw_payload;type:text"`
	EvaluatedAt time.Time `gorm:"column:evaluated_at"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	ExpiresAt   time.Time `gorm:"column:expires_at;index"`
}

// TableName overrides the gorm table name.
func (CacheEntryRecord) TableName() string {
	return "verification_cache_entries"
}

// GormStore persists cache entries in the application database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates the store and migrates its table.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&CacheEntryRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate verification cache table: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) (*Entry, bool, error) {
	var rec CacheEntryRecord
	err := s.db.WithContext(ctx).Where("cache_key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	entry, err := recordToEntry(&rec)
	if err != nil {
		return nil, false, err
	}
	return entry, true, nil
}

func (s *GormStore) Put(ctx context.Context, e *Entry) error {
	rec, err := entryToRecord(e)
	if err != nil {
		return err
	}

	// Overwrite by key: a re-verification supersedes the previous entry.
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(rec).Error
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

func (s *GormStore) DeleteAll(ctx context.Context) error {
	err := s.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&CacheEntryRecord{}).Error
	if err != nil {
		return fmt.Errorf("failed to flush cache: %w", err)
	}
	return nil
}

func (s *GormStore) DeleteByStore(ctx context.Context, storeID string) error {
	err := s.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Delete(&CacheEntryRecord{}).Error
	if err != nil {
		return fmt.Errorf("failed to invalidate cache for store %s: %w", storeID, err)
	}
	return nil
}

func (s *GormStore) DeleteByInvoiceRef(ctx context.Context, storeID, invoiceRef string) error {
	err := s.db.WithContext(ctx).
		Where("store_id = ? AND LOWER(invoice_reference) = LOWER(?)", storeID, invoiceRef).
		Delete(&CacheEntryRecord{}).Error
	if err != nil {
		return fmt.Errorf("failed to invalidate cache for invoice %s: %w", invoiceRef, err)
	}
	return nil
}

func (s *GormStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&CacheEntryRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge expired cache entries: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func entryToRecord(e *Entry) (*CacheEntryRecord, error) {
	var payload string
	if e.Result.MatchedRow != nil {
		b, err := json.Marshal(e.Result.MatchedRow)
		if err != nil {
			return nil, fmt.Errorf("failed to encode matched row: %w", err)
		}
		payload = string(b)
	}

	return &CacheEntryRecord{
		Key:         e.Key,
		StoreID:     e.StoreID,
		InvoiceRef:  e.InvoiceRef,
		Supplier:    e.Supplier,
		Found:       e.Result.Found,
		RawPayload:  payload,
		EvaluatedAt: e.Result.EvaluatedAt,
		CreatedAt:   e.CreatedAt,
		ExpiresAt:   e.ExpiresAt,
	}, nil
}

func recordToEntry(rec *CacheEntryRecord) (*Entry, error) {
	var row ledger.Row
	if rec.RawPayload != "" {
		if err := json.Unmarshal([]byte(rec.RawPayload), &row); err != nil {
			return nil, fmt.Errorf("failed to decode matched row: %w", err)
		}
	}

	return &Entry{
		Key:        rec.Key,
		StoreID:    rec.StoreID,
		InvoiceRef: rec.InvoiceRef,
		Supplier:   rec.Supplier,
		Result: Result{
			Found:       rec.Found,
			MatchedRow:  row,
			EvaluatedAt: rec.EvaluatedAt,
		},
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}
