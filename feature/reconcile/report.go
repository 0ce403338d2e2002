package reconcile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"delivery-reconciler/core/archive"

	"github.com/minio/minio-go/v7"
)

// DeliveryOutcome is the per-delivery line of a batch report.
type DeliveryOutcome struct {
	DeliveryID uint    `json:"delivery_id"`
	Outcome    Outcome `json:"outcome"`
	// Error carries the failure message for failed deliveries.
	Error string `json:"error,omitempty"`
}

// Summary provides aggregate counts for a batch run.
type Summary struct {
	Total         int `json:"total"`
	Reconciled    int `json:"reconciled"`
	NotReconciled int `json:"not_reconciled"`
	Failed        int `json:"failed"`
}

func (s *Summary) count(o Outcome) {
	s.Total++
	switch o {
	case OutcomeReconciled:
		s.Reconciled++
	case OutcomeNotReconciled:
		s.NotReconciled++
	default:
		s.Failed++
	}
}

// Report is the outcome of a batch reconciliation run.
type Report struct {
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Summary    Summary           `json:"summary"`
	Results    []DeliveryOutcome `json:"results"`
}

// Archiver uploads batch reports to object storage for audit.
type Archiver struct {
	client archive.Client
	bucket string
}

// NewArchiver creates a report archiver writing to the given bucket.
func NewArchiver(client archive.Client, bucket string) *Archiver {
	return &Archiver{client: client, bucket: bucket}
}

// Store uploads the report as JSON and returns the object name.
func (a *Archiver) Store(ctx context.Context, report *Report) (string, error) {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return "", fmt.Errorf("failed to check archive bucket: %w", err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return "", fmt.Errorf("failed to create archive bucket: %w", err)
		}
	}

	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}

	object := fmt.Sprintf("reports/reconcile-%s.json", report.StartedAt.UTC().Format("20060102-150405"))
	_, err = a.client.PutObject(ctx, a.bucket, object,
		bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}

	return object, nil
}
