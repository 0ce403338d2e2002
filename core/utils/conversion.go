package utils

import "fmt"

// ToString converts various types to string.
// Ledger rows arrive as untyped JSON values, so column reads go through here.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
