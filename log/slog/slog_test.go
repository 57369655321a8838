package slog

import (
	"bytes"
	stdslog "log/slog"
	"strings"
	"testing"

	"github.com/unkn0wn-root/bundlecache"
)

func TestSlogLoggerStableFields(t *testing.T) {
	var buf bytes.Buffer
	h := stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelDebug})
	l := Logger{L: stdslog.New(h)}

	l.Info("deferred store done", bundlecache.Fields{"z": 1, "a": "x", "languages": 3})

	out := buf.String()
	if !strings.Contains(out, `msg="deferred store done" a=x languages=3 z=1`) {
		t.Fatalf("unexpected output %q", out)
	}
}
