package asynchook

import (
	"sync"
	"testing"

	"github.com/unkn0wn-root/bundlecache"
)

type countingHooks struct {
	bundlecache.NopHooks
	mu       sync.Mutex
	rejected []string
	block    chan struct{}
}

func (c *countingHooks) EntryRejected(lang, _ string) {
	if c.block != nil {
		<-c.block
	}
	c.mu.Lock()
	c.rejected = append(c.rejected, lang)
	c.mu.Unlock()
}

func TestAsyncDeliversThenDrainsOnClose(t *testing.T) {
	inner := &countingHooks{}
	h := New(inner, 2, 16)
	for _, l := range []string{"en", "fr", "de"} {
		h.EntryRejected(l, bundlecache.ReasonExpired)
	}
	h.Close()

	if len(inner.rejected) != 3 {
		t.Fatalf("want 3 events, got %v", inner.rejected)
	}
	h.EntryRejected("late", bundlecache.ReasonAbsent) // must not panic
	if h.Dropped() != 1 {
		t.Fatalf("dropped=%d", h.Dropped())
	}
}

func TestAsyncDropsWhenFull(t *testing.T) {
	inner := &countingHooks{block: make(chan struct{})}
	h := New(inner, 1, 1)

	// first event occupies the worker, second fills the queue
	h.EntryRejected("a", bundlecache.ReasonEmpty)
	for h.Dropped() == 0 {
		h.EntryRejected("x", bundlecache.ReasonEmpty)
	}
	close(inner.block)
	h.Close()
	if h.Dropped() == 0 {
		t.Fatalf("expected drops on a full queue")
	}
}
