// Package reconcile is the reconciliation orchestrator feature.
//
// For a delivery it loads the invoice reference, supplier and store, resolves
// the store's ledger binding, asks the verification cache whether the ledger
// confirms the delivery, and updates the delivery record accordingly. It also
// provides batch runs over all pending deliveries, with optional report
// archiving to object storage.
//
// The orchestrator is the only place deciding whether a failure blocks
// reconciliation: missing store configuration and ledger failures leave the
// delivery untouched and surface as a failed outcome.
package reconcile
