// Package oracle talks to the remote combination service that backs the
// recipe cache: a rate-limited, retrying HTTP client with the oracle's
// exact wire format and failure discipline.
package oracle

import "time"

// WordCombineCharLimit is the maximum length either ingredient name may
// have before a combine request is short-circuited to "Nothing" without a
// network call.
const WordCombineCharLimit = 30

// Config holds the oracle tunables; internal/craft/config fills it from
// the matching top-level keys of config.json.
type Config struct {
	RequestAddr     string        `json:"request_addr"`
	RequestCooldown time.Duration `json:"-"`
	BatchLimit      int           `json:"batch_limit"`
	ErrorRetry      bool          `json:"error_retry"`

	// RequestCooldownSeconds is the JSON-facing form of RequestCooldown;
	// config loading converts it into a time.Duration.
	RequestCooldownSeconds float64 `json:"request_cooldown"`
}

// DefaultConfig returns the oracle defaults named in spec.md §4.3/§7.
func DefaultConfig() Config {
	return Config{
		RequestAddr:            "https://neal.fun/api/infinite-craft/pair",
		RequestCooldownSeconds: 0.5,
		RequestCooldown:        500 * time.Millisecond,
		BatchLimit:             50,
		ErrorRetry:             true,
	}
}

const (
	sleepDefault   = 1 * time.Second
	retryExponent  = 2.0
	maxSleep       = 60 * time.Second
)
