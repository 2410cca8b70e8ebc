// Package logger provides a structured logging facility based on Zap.
//
// Every command builds its logger from the loaded configuration and passes it
// down explicitly. Crawl progress, retry attempts, skipped items and final
// accepted/rejected/suspicious counts are all emitted as structured fields.
//
// # Context Awareness
//
// When the snapshot server is running, WithRayID extracts the RayID from a
// Fiber context and attaches it to the log entry, so all logs for one request
// can be correlated.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("crawl started", zap.String("expansion", "hBP01"))
package logger
