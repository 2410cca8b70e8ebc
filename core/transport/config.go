package transport

import "time"

// DefaultUserAgent is a desktop browser identification string.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// Config holds HTTP settings shared by every crawl target.
type Config struct {
	// TimeoutSeconds bounds each request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"15"`
	// UserAgent is sent on every request.
	UserAgent string `mapstructure:"user_agent" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"`
	// MaxAttempts is the number of tries per request, including the first.
	MaxAttempts int `mapstructure:"max_attempts" default:"3"`
	// BackoffMs is the wait after the first failed attempt; it doubles afterwards.
	BackoffMs int `mapstructure:"backoff_ms" default:"1000"`
	// MaxBackoffMs caps the wait between attempts.
	MaxBackoffMs int `mapstructure:"max_backoff_ms" default:"8000"`
}

// Timeout returns the request timeout, falling back to 15s.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
