package bundlecache

import (
	"context"
	"maps"
	"sync"

	"github.com/unkn0wn-root/bundlecache/internal/wire"
)

func (c *cache) Store(ctx context.Context, bundles map[string]Bundle) error {
	if len(bundles) == 0 {
		return nil
	}
	now := c.nowMillis()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures map[string]error
	)
	for lng, b := range bundles {
		if lng == "" {
			c.log.Debug("store skipped empty language", Fields{"keys": len(b)})
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.write(ctx, lng, b, now); err != nil {
				c.hooks.WriteFailed(lng, err)
				mu.Lock()
				if failures == nil {
					failures = make(map[string]error)
				}
				failures[lng] = err
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(failures) > 0 {
		return &StoreWriteError{Failures: failures}
	}
	return nil
}

// write stamps one bundle and persists it. The version field is set only
// when a tag is configured for the language.
func (c *cache) write(ctx context.Context, lng string, b Bundle, now int64) error {
	e := wire.Entry{
		Bundle:    maps.Clone(map[string]string(b)),
		WrittenAt: now,
	}
	if v, ok := c.versions[lng]; ok {
		e.Version, e.HasVersion = v, true
	}
	raw, err := c.codec.Encode(wire.Flatten(e))
	if err != nil {
		return err
	}
	return c.provider.Set(ctx, c.key(lng), raw, c.storeTTL())
}
