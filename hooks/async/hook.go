// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    RejectEvery: 10, // sample: ~every 10th rejected entry
//	})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	cache, _ := bundlecache.New(bundlecache.Options{
//	    Provider: provider,
//	    Hooks:    hooks,
//	})
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/bundlecache"
)

// Hooks forwards events to inner on worker goroutines. Events that do not
// fit in the queue are dropped and counted.
type Hooks struct {
	inner   bundlecache.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
}

var _ bundlecache.Hooks = (*Hooks)(nil)

func New(inner bundlecache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events after Close are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default: // drop
		h.dropped.Add(1)
	}
}

func (h *Hooks) EntryRejected(lang, reason string) {
	h.try(func() { h.inner.EntryRejected(lang, reason) })
}
func (h *Hooks) WriteFailed(lang string, err error) {
	h.try(func() { h.inner.WriteFailed(lang, err) })
}
func (h *Hooks) SaveCoalesced(n int) { h.try(func() { h.inner.SaveCoalesced(n) }) }
func (h *Hooks) SaveFlushed(n int, err error) {
	h.try(func() { h.inner.SaveFlushed(n, err) })
}
