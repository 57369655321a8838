package bundlecache

import (
	"context"
	"maps"
)

func (c *cache) Save(bundles map[string]Bundle) {
	payload := make(map[string]Bundle, len(bundles))
	for lng, b := range bundles {
		payload[lng] = maps.Clone(b)
	}
	if c.saver.Stopped() {
		c.log.Warn("save after close dropped", Fields{"languages": len(payload)})
		return
	}
	if c.saver.Trigger(payload) {
		c.hooks.SaveCoalesced(len(payload))
	}
}

func (c *cache) Flush(ctx context.Context) error {
	var err error
	c.saver.FlushFunc(func(payload map[string]Bundle) {
		err = c.Store(ctx, payload)
		c.afterSave(payload, err)
	})
	return err
}

// deferredStore runs on the debounce timer. Nobody waits for it, so the
// result only goes to the logger and hooks.
func (c *cache) deferredStore(payload map[string]Bundle) {
	ctx, cancel := context.WithTimeout(context.Background(), c.storeTimeout)
	defer cancel()
	c.afterSave(payload, c.Store(ctx, payload))
}

func (c *cache) afterSave(payload map[string]Bundle, err error) {
	if err != nil {
		c.log.Warn("deferred store failed", Fields{"languages": len(payload), "err": err})
	} else {
		c.log.Debug("deferred store done", Fields{"languages": len(payload)})
	}
	c.hooks.SaveFlushed(len(payload), err)
}
