package cache

import "fmt"

// FetchPolicy defines how cached listing is used when customers are requested
type FetchPolicy string

const (
	// NetworkOnly always asks backend, result is still written to cache
	NetworkOnly FetchPolicy = "network-only"
	// CacheFirst serves cached result if present and asks backend otherwise
	CacheFirst FetchPolicy = "cache-first"
)

// ParseFetchPolicy validates fetch policy name
func ParseFetchPolicy(s string) (FetchPolicy, error) {
	switch p := FetchPolicy(s); p {
	case NetworkOnly, CacheFirst:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported fetch policy %q", s)
	}
}

// Backend is storage used by listing cache
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
)
