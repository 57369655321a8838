package bundlecache

import (
	"context"
	"fmt"
	"maps"
	"time"

	"go.uber.org/multierr"

	"github.com/unkn0wn-root/bundlecache/codec"
	"github.com/unkn0wn-root/bundlecache/internal/debounce"
	"github.com/unkn0wn-root/bundlecache/internal/util"
	pr "github.com/unkn0wn-root/bundlecache/provider"
)

type cache struct {
	provider pr.Provider
	codec    codec.Codec[codec.Record]
	log      Logger
	hooks    Hooks
	clock    func() time.Time

	enabled      bool
	prefix       string
	ttl          time.Duration
	versions     map[string]string
	storeTimeout time.Duration

	saver *debounce.Debouncer[map[string]Bundle]
}

func newCache(opts Options, after debounce.AfterFunc) (*cache, error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("bundlecache: provider is required")
	}

	c := &cache{
		provider: opts.Provider,
		enabled:  opts.Enabled,
		versions: maps.Clone(opts.Versions),
	}
	if c.versions == nil {
		c.versions = map[string]string{}
	}

	// defaults
	c.codec = coalesce[codec.Codec[codec.Record]](opts.Codec, codec.JSON[codec.Record]{})
	c.log = coalesce[Logger](opts.Logger, NopLogger{})
	c.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	c.prefix = coalesce(opts.Prefix, DefaultPrefix)
	c.ttl = expiration(opts.Expiration)
	c.storeTimeout = positive(opts.StoreTimeout, DefaultStoreTimeout)
	c.clock = opts.Now
	if c.clock == nil {
		c.clock = time.Now
	}

	window := positive(opts.QuietWindow, DefaultQuietWindow)
	c.saver = debounce.NewWithAfterFunc(window, c.deferredStore, after)
	return c, nil
}

func (c *cache) Enabled() bool { return c.enabled }

func (c *cache) Purge(ctx context.Context, languages []string) error {
	var err error
	for _, lng := range util.Languages(languages) {
		if delErr := c.provider.Del(ctx, c.key(lng)); delErr != nil {
			err = multierr.Append(err, fmt.Errorf("purge %q: %w", lng, delErr))
		}
	}
	return err
}

func (c *cache) Close(ctx context.Context) error {
	var err error
	run := func(payload map[string]Bundle) {
		serr := c.Store(ctx, payload)
		c.afterSave(payload, serr)
		err = multierr.Append(err, serr)
	}
	// a Save landing while a flush is writing is picked up by the next pass;
	// StopFunc takes whatever is left and refuses later Saves atomically.
	for c.saver.FlushFunc(run) {
	}
	// deferred writes already running finish before the provider goes away
	c.saver.StopFunc(run)
	if c.provider != nil {
		err = multierr.Append(err, c.provider.Close(ctx))
	}
	return err
}

func (c *cache) key(language string) string {
	return util.StorageKey(c.prefix, language)
}

// storeTTL is the expiry handed to the provider. A zero TTL still has to
// expire physically, and most stores read 0 as "keep forever".
func (c *cache) storeTTL() time.Duration {
	if c.ttl <= 0 {
		return time.Millisecond
	}
	return c.ttl
}

func (c *cache) nowMillis() int64 {
	return c.clock().UnixMilli()
}
