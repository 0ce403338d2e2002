package models

import "time"

// Delivery represents the 'deliveries' table. Only the columns involved in
// reconciliation are mapped; the rest of the delivery lifecycle is owned by
// other systems.
type Delivery struct {
	ID         uint   `gorm:"column:id;primaryKey"`
	StoreID    string `gorm:"column:store_id;index"`
	InvoiceRef string `gorm:"column:invoice_reference"`
	Supplier   string `gorm:"column:supplier_name"`
	// Reconciled is set once the invoice reference and supplier were both
	// verified present in the store's ledger.
	Reconciled   bool       `gorm:"column:reconciled"`
	ReconciledAt *time.Time `gorm:"column:reconciled_at"`
	// MatchedPayload is the raw ledger row that confirmed the delivery,
	// kept as JSON for diagnostics.
	MatchedPayload string `gorm:"column:matched_payload;type:text"`
}

// TableName overrides the gorm table name.
func (Delivery) TableName() string {
	return "deliveries"
}

// StoreLedgerConfig represents the 'store_ledger_configs' table: the per-store
// binding to the external ledger service.
type StoreLedgerConfig struct {
	StoreID         string `gorm:"column:store_id;primaryKey"`
	ExternalTableID string `gorm:"column:external_table_id"`
	InvoiceColumn   string `gorm:"column:invoice_column"`
	SupplierColumn  string `gorm:"column:supplier_column"`
}

// TableName overrides the gorm table name.
func (StoreLedgerConfig) TableName() string {
	return "store_ledger_configs"
}
