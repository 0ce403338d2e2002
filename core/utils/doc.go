// Package utils provides small type conversion helpers for values read from
// loosely typed sources such as JSON row payloads.
package utils
