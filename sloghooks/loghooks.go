package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/bundlecache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	RejectEvery   uint64
	CoalesceEvery uint64

	// Optional language redactor; nil logs languages as-is. HashRedact hides
	// them when language ids carry tenant names.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	rejectCtr   atomic.Uint64
	coalesceCtr atomic.Uint64
}

var _ bundlecache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

// HashRedact replaces s with a short SHA-256 prefix.
func HashRedact(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:8])
}

func (h *Hooks) redact(lang string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(lang)
	}
	return lang
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) EntryRejected(lang, reason string) {
	if h.l == nil || !sample(h.opts.RejectEvery, &h.rejectCtr) {
		return
	}
	h.l.Debug("bundlecache.entry_rejected",
		"lang", h.redact(lang),
		"reason", reason)
}

func (h *Hooks) WriteFailed(lang string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("bundlecache.write_failed",
		"lang", h.redact(lang),
		"err", err)
}

func (h *Hooks) SaveCoalesced(languages int) {
	if h.l == nil || !sample(h.opts.CoalesceEvery, &h.coalesceCtr) {
		return
	}
	h.l.Debug("bundlecache.save_coalesced",
		"languages", languages)
}

func (h *Hooks) SaveFlushed(languages int, err error) {
	if h.l == nil {
		return
	}
	if err != nil {
		h.l.Error("bundlecache.save_failed",
			"languages", languages,
			"err", err)
		return
	}
	h.l.Info("bundlecache.save_flushed",
		"languages", languages)
}
