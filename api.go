package bundlecache

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/bundlecache/codec"
	pr "github.com/unkn0wn-root/bundlecache/provider"
)

// Bundle is one language's resources: key (or namespace/key) -> translated
// string. Opaque to the cache.
type Bundle map[string]string

// Cache persists per-language bundles in a Provider and serves them back
// while they are fresh and match the configured version tag.
type Cache interface {
	// Enabled reports Options.Enabled. The cache never short-circuits on it;
	// hosts decide whether to route through the cache at all.
	Enabled() bool

	// Load fetches all languages concurrently. Any provider read failure fails
	// the whole call with *StoreReadError and a nil map. Languages that are
	// missing, undecodable, empty, expired or version-mismatched are simply
	// absent from the result.
	Load(ctx context.Context, languages []string) (map[string]Bundle, error)

	// LoadFunc is Load with callback delivery: cb(err, nil) on failure,
	// cb(nil, bundles) otherwise. cb runs once, on the calling goroutine.
	LoadFunc(ctx context.Context, languages []string, cb func(error, map[string]Bundle))

	// Store stamps and writes every bundle concurrently. All writes are
	// attempted; failures come back together as *StoreWriteError.
	Store(ctx context.Context, bundles map[string]Bundle) error

	// Save schedules a Store of bundles after the quiet window. A Save while
	// one is pending replaces its payload and restarts the window. The
	// outcome goes to the Logger and Hooks only.
	Save(bundles map[string]Bundle)

	// Flush runs a pending Save now and returns its Store error.
	Flush(ctx context.Context) error

	// Purge deletes the stored entries for languages.
	Purge(ctx context.Context, languages []string) error

	// Close flushes a pending Save, waits for in-flight deferred writes and
	// closes the Provider.
	Close(ctx context.Context) error
}

// Options configure a Cache. Only Provider is required. Zero values fall
// back to defaults; the struct is copied at New and never read again.
type Options struct {
	Provider pr.Provider
	Codec    c.Codec[c.Record] // nil => codec.JSON

	Enabled    bool              // reported by Enabled(); default false
	Prefix     string            // "" => "i18next_fres_"
	Expiration time.Duration     // entry TTL; 0 => 7 days, < 0 => ExpireImmediately
	Versions   map[string]string // language -> version tag; absent => no check

	QuietWindow  time.Duration // Save debounce; <= 0 => 10s
	StoreTimeout time.Duration // deadline for a deferred Store; <= 0 => 30s

	Logger Logger           // nil => NopLogger
	Hooks  Hooks            // nil => NopHooks
	Now    func() time.Time // nil => time.Now
}

func New(opts Options) (Cache, error) {
	return newCache(opts, nil)
}
