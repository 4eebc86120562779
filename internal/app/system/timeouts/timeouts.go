// Package timeouts centralizes context deadlines for handler and worker
// operations. Values start at defaults and can be overridden once at startup
// via Configure.
//
// Guidelines:
//   - Ping: health checks and connectivity probes
//   - Short: single-document cache reads
//   - Medium: list queries and classification reads
//   - Long: save forwarding (upstream write + cache refresh + audit)
//   - Sync: full catalog refresh from upstream
package timeouts

import (
	"sync"
	"time"
)

const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
	DefaultSync   = 5 * time.Minute
)

var mu sync.RWMutex

var (
	ping    = DefaultPing
	short   = DefaultShort
	medium  = DefaultMedium
	long    = DefaultLong
	refresh = DefaultSync
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document reads.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries and classification reads.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Long returns the timeout for save forwarding (upstream write plus cache
// refresh plus audit).
func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return long
}

// Sync returns the timeout for a full catalog refresh.
func Sync() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return refresh
}

// Config holds override values; zero fields keep the current setting.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
	Sync   time.Duration
}

// Configure applies overrides. Call during startup, before handlers are
// registered.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Short > 0 {
		short = cfg.Short
	}
	if cfg.Medium > 0 {
		medium = cfg.Medium
	}
	if cfg.Long > 0 {
		long = cfg.Long
	}
	if cfg.Sync > 0 {
		refresh = cfg.Sync
	}
}

// Reset restores defaults. Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	short = DefaultShort
	medium = DefaultMedium
	long = DefaultLong
	refresh = DefaultSync
}
