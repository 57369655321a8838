package sloghooks

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newBuf() (*bytes.Buffer, *slog.Logger) {
	var buf bytes.Buffer
	return &buf, slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestRejectSampling(t *testing.T) {
	buf, l := newBuf()
	h := New(l, Options{RejectEvery: 3})
	for i := 0; i < 9; i++ {
		h.EntryRejected("en", "expired")
	}
	if n := strings.Count(buf.String(), "bundlecache.entry_rejected"); n != 3 {
		t.Fatalf("want 3 sampled lines, got %d", n)
	}
}

func TestSaveFlushedLevels(t *testing.T) {
	buf, l := newBuf()
	h := New(l, Options{})
	h.SaveFlushed(2, nil)
	h.SaveFlushed(1, errors.New("boom"))

	out := buf.String()
	if !strings.Contains(out, "level=INFO msg=bundlecache.save_flushed languages=2") {
		t.Fatalf("missing info line: %q", out)
	}
	if !strings.Contains(out, "level=ERROR msg=bundlecache.save_failed languages=1 err=boom") {
		t.Fatalf("missing error line: %q", out)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	h := New(nil, Options{})
	h.EntryRejected("en", "absent")
	h.WriteFailed("en", errors.New("x"))
	h.SaveCoalesced(1)
	h.SaveFlushed(1, nil)
}

func TestRedactLanguage(t *testing.T) {
	buf, l := newBuf()
	h := New(l, Options{Redact: HashRedact})
	h.EntryRejected("acme-en", "expired")
	h.WriteFailed("acme-en", errors.New("boom"))

	out := buf.String()
	if strings.Contains(out, "acme-en") {
		t.Fatalf("language leaked: %q", out)
	}
	if n := strings.Count(out, "lang="+HashRedact("acme-en")); n != 2 {
		t.Fatalf("want 2 redacted lang attrs, got %d in %q", n, out)
	}

	buf.Reset()
	New(l, Options{}).EntryRejected("en", "absent")
	if !strings.Contains(buf.String(), "lang=en") {
		t.Fatalf("no redactor should log as-is: %q", buf.String())
	}
}
