package reconcile

import (
	"context"
	"errors"
	"fmt"

	"delivery-reconciler/feature/reconcile/models"

	"gorm.io/gorm"
)

// ErrConfigMissing marks a store with no external ledger table bound.
// This is a configuration defect needing administrative action, not a
// transient fault.
var ErrConfigMissing = errors.New("store has no ledger table configured")

// ConfigProvider resolves a store identifier to its ledger table binding.
type ConfigProvider interface {
	GetConfig(ctx context.Context, storeID string) (models.StoreLedgerConfig, error)
}

// GormConfigProvider reads store ledger bindings from the application
// database. The binding may change between requests if an administrator
// edits it; each call reads the current row.
type GormConfigProvider struct {
	db *gorm.DB
}

// NewGormConfigProvider creates a new config provider.
func NewGormConfigProvider(db *gorm.DB) *GormConfigProvider {
	return &GormConfigProvider{db: db}
}

func (p *GormConfigProvider) GetConfig(ctx context.Context, storeID string) (models.StoreLedgerConfig, error) {
	var cfg models.StoreLedgerConfig
	err := p.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.StoreLedgerConfig{}, fmt.Errorf("%w: store %q", ErrConfigMissing, storeID)
	}
	if err != nil {
		return models.StoreLedgerConfig{}, fmt.Errorf("failed to load ledger config for store %q: %w", storeID, err)
	}

	// A row with an empty table id is as unusable as no row at all.
	if cfg.ExternalTableID == "" {
		return models.StoreLedgerConfig{}, fmt.Errorf("%w: store %q has an empty table binding", ErrConfigMissing, storeID)
	}

	return cfg, nil
}
