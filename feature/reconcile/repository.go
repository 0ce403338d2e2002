package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"delivery-reconciler/core/ledger"
	"delivery-reconciler/feature/reconcile/models"

	"gorm.io/gorm"
)

// ErrDeliveryNotFound marks a delivery id with no matching record.
var ErrDeliveryNotFound = errors.New("delivery not found")

// DeliveryContext is the slice of a delivery the verification needs.
type DeliveryContext struct {
	StoreID    string
	InvoiceRef string
	Supplier   string
}

// DeliveryRepository provides delivery records and accepts reconciliation
// status updates.
type DeliveryRepository interface {
	// GetDeliveryContext loads the fields needed for verification.
	GetDeliveryContext(ctx context.Context, deliveryID uint) (DeliveryContext, error)
	// GetDelivery loads the full delivery record.
	GetDelivery(ctx context.Context, deliveryID uint) (*models.Delivery, error)
	// MarkReconciled flags the delivery reconciled and stores the matched
	// ledger row for diagnostics.
	MarkReconciled(ctx context.Context, deliveryID uint, matched ledger.Row) error
	// LeaveUnreconciled clears any reconciliation state on the delivery.
	LeaveUnreconciled(ctx context.Context, deliveryID uint) error
	// ListUnreconciled returns the ids of deliveries awaiting reconciliation.
	ListUnreconciled(ctx context.Context) ([]uint, error)
}

// GormDeliveryRepository implements DeliveryRepository over the application
// database.
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a new delivery repository.
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

func (r *GormDeliveryRepository) GetDeliveryContext(ctx context.Context, deliveryID uint) (DeliveryContext, error) {
	d, err := r.GetDelivery(ctx, deliveryID)
	if err != nil {
		return DeliveryContext{}, err
	}
	return DeliveryContext{
		StoreID:    d.StoreID,
		InvoiceRef: d.InvoiceRef,
		Supplier:   d.Supplier,
	}, nil
}

func (r *GormDeliveryRepository) GetDelivery(ctx context.Context, deliveryID uint) (*models.Delivery, error) {
	var d models.Delivery
	err := r.db.WithContext(ctx).First(&d, deliveryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", ErrDeliveryNotFound, deliveryID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load delivery %d: %w", deliveryID, err)
	}
	return &d, nil
}

func (r *GormDeliveryRepository) MarkReconciled(ctx context.Context, deliveryID uint, matched ledger.Row) error {
	payload := ""
	if matched != nil {
		b, err := json.Marshal(matched)
		if err != nil {
			return fmt.Errorf("failed to encode matched payload: %w", err)
		}
		payload = string(b)
	}

	now := time.Now()
	err := r.db.WithContext(ctx).
		Model(&models.Delivery{}).
		Where("id = ?", deliveryID).
		Updates(map[string]any{
			"reconciled":      true,
			"reconciled_at":   &now,
			"matched_payload": payload,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark delivery %d reconciled: %w", deliveryID, err)
	}
	return nil
}

func (r *GormDeliveryRepository) LeaveUnreconciled(ctx context.Context, deliveryID uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Delivery{}).
		Where("id = ?", deliveryID).
		Updates(map[string]any{
			"reconciled":      false,
			"reconciled_at":   nil,
			"matched_payload": "",
		}).Error
	if err != nil {
		return fmt.Errorf("failed to reset delivery %d: %w", deliveryID, err)
	}
	return nil
}

func (r *GormDeliveryRepository) ListUnreconciled(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Delivery{}).
		Where("reconciled = ?", false).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list unreconciled deliveries: %w", err)
	}
	return ids, nil
}
