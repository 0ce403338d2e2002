// Package archive provides object storage access for reconciliation reports.
//
// Batch reconciliation runs can persist their report as a JSON object in an
// S3-compatible bucket, giving an audit trail of what was reconciled, when,
// and against which ledger rows. The minio client sits behind an interface
// so tests can substitute a mock.
package archive
