// Package server holds configuration for the HTTP server surface.
//
// The actual Fiber application is assembled in the start command; this package
// only defines the tunables (port, API key) so they can participate in the
// central configuration loading.
package server
