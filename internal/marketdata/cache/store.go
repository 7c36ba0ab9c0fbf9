package cache

import (
	"context"
	"time"
)

// Store caches raw fetched payloads keyed by (ticker, dataType).
// Entries expire after a TTL; an expired entry is a miss, not an error.
type Store interface {
	// Get loads a cached value into dest. Returns false on miss or
	// expiry.
	Get(ctx context.Context, ticker, dataType string, dest interface{}) (bool, error)

	// Set stores a value, replacing any previous entry.
	Set(ctx context.Context, ticker, dataType string, value interface{}) error

	// Delete removes all entries for the given tickers; with no tickers
	// it clears the whole cache. Returns the number of removed entries.
	Delete(ctx context.Context, tickers ...string) (int, error)

	// Entries lists what the cache currently holds.
	Entries(ctx context.Context) ([]Entry, error)
}

// Entry describes one cached payload.
type Entry struct {
	Ticker    string    `json:"ticker"`
	DataType  string    `json:"data_type"`
	FetchedAt time.Time `json:"fetched_at"`
	Expired   bool      `json:"expired"`
}
