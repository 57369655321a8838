package ristretto

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestRistrettoSetIsReadable(t *testing.T) {
	ctx := context.Background()
	p, err := New(Config{NumCounters: 1000, MaxCost: 1 << 20, BufferItems: 64})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close(ctx)

	if err := p.Set(ctx, "p_fr", []byte("rec"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	b, ok, err := p.Get(ctx, "p_fr")
	if err != nil || !ok || !bytes.Equal(b, []byte("rec")) {
		t.Fatalf("Get: b=%q ok=%v err=%v", b, ok, err)
	}
	_ = p.Del(ctx, "p_fr")
	if _, ok, _ := p.Get(ctx, "p_fr"); ok {
		t.Fatalf("expected miss after Del")
	}
}

func TestRistrettoInvalidConfig(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error for zero config")
	}
}
