// Package transport fetches and parses the HTML pages the crawlers read.
//
// Client wraps a resty client with a fixed timeout, a browser User-Agent,
// a bounded retry policy (core/retry) and a Pacer built on
// golang.org/x/time/rate. Non-2xx responses surface as *StatusError;
// network failures as *TimeoutError or *ConnectionError.
//
// Consumers depend on the Fetcher interface so tests can hand in canned
// documents.
package transport
