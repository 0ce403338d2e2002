package verify

import "time"

// Store backend names accepted by the cache configuration.
const (
	StoreMemory   = "memory"
	StoreDatabase = "database"
)

// Config holds configuration for the verification cache.
type Config struct {
	// FoundTTL is how long a positive verification stays trusted.
	FoundTTL time.Duration `mapstructure:"found_ttl" default:"6h"`
	// NotFoundTTL is how long a negative verification stays trusted.
	// Must be strictly shorter than FoundTTL so a ledger row that arrives
	// late is picked up without manual invalidation.
	NotFoundTTL time.Duration `mapstructure:"not_found_ttl" default:"10m"`
	// Store selects the entry store backend (memory, database).
	Store string `mapstructure:"store" default:"memory"`
	// SweepInterval is how often expired entries are purged.
	SweepInterval time.Duration `mapstructure:"sweep_interval" default:"15m"`
}

// Validate checks the TTL invariants.
func (c Config) Validate() error {
	if c.FoundTTL <= 0 || c.NotFoundTTL <= 0 {
		return errTTLNotPositive
	}
	if c.NotFoundTTL >= c.FoundTTL {
		return errTTLAsymmetry
	}
	return nil
}
