package reconcile

import (
	"context"
	"errors"
	"time"

	"delivery-reconciler/core/ledger"
	"delivery-reconciler/core/verify"

	"go.uber.org/zap"
)

// Outcome is the result of reconciling one delivery.
type Outcome string

const (
	// OutcomeReconciled means the ledger confirmed the delivery.
	OutcomeReconciled Outcome = "reconciled"
	// OutcomeNotReconciled means the ledger had no matching row; the
	// delivery stays unreconciled and may be retried later.
	OutcomeNotReconciled Outcome = "not_reconciled"
	// OutcomeFailed means verification could not complete (missing
	// configuration, invalid data or ledger failure). Delivery state is
	// left untouched.
	OutcomeFailed Outcome = "failed"
)

// Service orchestrates delivery reconciliation: it loads the delivery
// context, resolves the store's ledger binding, asks the verification cache
// and applies the outcome to the delivery record.
type Service struct {
	deliveries DeliveryRepository
	configs    ConfigProvider
	cache      *verify.Cache
	archiver   *Archiver
	logger     *zap.Logger
}

// NewService creates a new reconciliation service. archiver may be nil when
// report archiving is disabled.
func NewService(deliveries DeliveryRepository, configs ConfigProvider, cache *verify.Cache, archiver *Archiver, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		deliveries: deliveries,
		configs:    configs,
		cache:      cache,
		archiver:   archiver,
		logger:     logger,
	}
}

// Reconcile verifies one delivery against its store's ledger.
// On a failure the delivery record is never altered, so a transient ledger
// outage cannot unreconcile a delivery.
func (s *Service) Reconcile(ctx context.Context, deliveryID uint) (Outcome, error) {
	dc, err := s.deliveries.GetDeliveryContext(ctx, deliveryID)
	if err != nil {
		return OutcomeFailed, err
	}

	cfg, err := s.configs.GetConfig(ctx, dc.StoreID)
	if err != nil {
		s.logger.Warn("store ledger config unavailable",
			zap.Uint("delivery_id", deliveryID),
			zap.String("store_id", dc.StoreID),
			zap.Error(err))
		return OutcomeFailed, err
	}

	res, err := s.cache.GetOrVerify(ctx,
		verify.TableConfig{
			TableID:        cfg.ExternalTableID,
			InvoiceColumn:  cfg.InvoiceColumn,
			SupplierColumn: cfg.SupplierColumn,
		},
		verify.Query{
			StoreID:    dc.StoreID,
			InvoiceRef: dc.InvoiceRef,
			Supplier:   dc.Supplier,
		})
	if err != nil {
		if ledger.IsLookupFailure(err) {
			s.logger.Warn("ledger lookup failed",
				zap.Uint("delivery_id", deliveryID),
				zap.String("store_id", dc.StoreID),
				zap.Error(err))
		}
		return OutcomeFailed, err
	}

	if !res.Found {
		s.logger.Info("delivery not found in ledger",
			zap.Uint("delivery_id", deliveryID),
			zap.String("store_id", dc.StoreID),
			zap.String("invoice_reference", dc.InvoiceRef))
		if err := s.deliveries.LeaveUnreconciled(ctx, deliveryID); err != nil {
			return OutcomeFailed, err
		}
		return OutcomeNotReconciled, nil
	}

	if err := s.deliveries.MarkReconciled(ctx, deliveryID, res.MatchedRow); err != nil {
		return OutcomeFailed, err
	}

	s.logger.Info("delivery reconciled",
		zap.Uint("delivery_id", deliveryID),
		zap.String("store_id", dc.StoreID),
		zap.String("invoice_reference", dc.InvoiceRef))
	return OutcomeReconciled, nil
}

// ReconcilePending reconciles every unreconciled delivery and returns a
// report. A failure on one delivery does not abort the batch; it is recorded
// in the report and the run continues.
func (s *Service) ReconcilePending(ctx context.Context) (*Report, error) {
	ids, err := s.deliveries.ListUnreconciled(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{
		StartedAt: time.Now(),
		Results:   make([]DeliveryOutcome, 0, len(ids)),
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		outcome, err := s.Reconcile(ctx, id)
		entry := DeliveryOutcome{DeliveryID: id, Outcome: outcome}
		if err != nil {
			entry.Error = err.Error()
		}
		report.Results = append(report.Results, entry)
		report.Summary.count(outcome)
	}

	report.FinishedAt = time.Now()
	return report, nil
}

// ReconcilePendingAndArchive runs a batch and, when an archiver is
// configured, uploads the report. Archive failure does not fail the run;
// the report is still returned.
func (s *Service) ReconcilePendingAndArchive(ctx context.Context) (*Report, string, error) {
	report, err := s.ReconcilePending(ctx)
	if err != nil {
		return nil, "", err
	}

	if s.archiver == nil {
		return report, "", nil
	}

	object, err := s.archiver.Store(ctx, report)
	if err != nil {
		s.logger.Warn("failed to archive reconciliation report", zap.Error(err))
		return report, "", nil
	}
	return report, object, nil
}

// IsConfigMissing reports whether err denotes a store without a ledger binding.
func IsConfigMissing(err error) bool {
	return errors.Is(err, ErrConfigMissing)
}
