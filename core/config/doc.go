// Package config provides centralized configuration loading.
//
// Configuration comes from environment variables, optionally seeded from a
// .env file. Defaults are declared as struct tags on the partial config
// structs owned by each package (server, database, ledger, cache, archive,
// log) and bound into Viper by reflection, so every key is overridable via
// the environment (e.g. CACHE_FOUND_TTL=12h, LEDGER_BASE_URL=...).
package config
