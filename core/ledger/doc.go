// Package ledger provides the client for the external tabular ledger service.
//
// Each store is bound to one table in that service. The client performs a
// single operation: fetch the rows of a table whose configured invoice column
// equals a given reference. The service may legitimately return several rows
// for one reference (duplicate invoice numbers across suppliers), so matching
// against the supplier column is left to the verification engine.
//
// # Failure taxonomy
//
// All transport-level failures surface as *LookupError with a kind of timeout,
// unreachable or bad_response, matchable with errors.Is against ErrTimeout,
// ErrUnreachable and ErrBadResponse. The client never retries; retry policy
// belongs to the caller.
package ledger
