// Package database provides the GORM connector for the application database.
//
// The database holds delivery records, per-store ledger configuration and,
// optionally, the persisted verification cache table. MySQL is the production
// driver; sqlite is supported for local development and tests.
package database
