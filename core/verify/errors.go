package verify

import "errors"

// ErrInvalidQuery marks a query rejected before any external call or cache
// mutation: empty fields after trimming, or a field containing the key
// delimiter.
var ErrInvalidQuery = errors.New("invalid verification query")

var (
	errTTLNotPositive = errors.New("cache TTLs must be positive")
	errTTLAsymmetry   = errors.New("not-found TTL must be shorter than found TTL")
)
