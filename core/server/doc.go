// Package server holds the HTTP server configuration.
//
// The serve command builds a fiber app from this configuration and exposes
// the latest crawl outputs read-only.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key and how many parsed
// snapshot files stay cached.
package server
