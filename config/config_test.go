package config

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/unkn0wn-root/bundlecache"
	"github.com/unkn0wn-root/bundlecache/provider/bigcache"
)

func envOpts(m map[string]string) env.Options {
	return env.Options{Prefix: EnvPrefix, Environment: m}
}

func TestFromEnvDefaults(t *testing.T) {
	got := fromEnv(envOpts(map[string]string{}))
	if !reflect.DeepEqual(got, Default()) {
		t.Fatalf("got %+v want %+v", got, Default())
	}
	if got.Enabled {
		t.Fatalf("enabled must default to false")
	}
}

func TestFromEnvValues(t *testing.T) {
	got := fromEnv(envOpts(map[string]string{
		"BUNDLECACHE_ENABLED":         "true",
		"BUNDLECACHE_PREFIX":          "app_",
		"BUNDLECACHE_EXPIRATION_TIME": "60000",
		"BUNDLECACHE_VERSIONS":        "en:v1, fr:v2",
		"BUNDLECACHE_QUIET_WINDOW":    "250ms",
		"BUNDLECACHE_STORE_URL":       "redis://localhost:6379/1",
	}))
	want := Config{
		Enabled:     true,
		Prefix:      "app_",
		Expiration:  time.Minute,
		Versions:    map[string]string{"en": "v1", "fr": "v2"},
		QuietWindow: 250 * time.Millisecond,
		StoreURL:    "redis://localhost:6379/1",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestFromEnvMalformedFallsBack(t *testing.T) {
	got := fromEnv(envOpts(map[string]string{
		"BUNDLECACHE_ENABLED":         "sometimes",
		"BUNDLECACHE_EXPIRATION_TIME": "-5",
		"BUNDLECACHE_VERSIONS":        "en,:v2,de:,fr:v3",
		"BUNDLECACHE_QUIET_WINDOW":    "soon",
	}))
	def := Default()
	if got.Enabled != def.Enabled || got.Expiration != def.Expiration || got.QuietWindow != def.QuietWindow {
		t.Fatalf("malformed values should fall back: %+v", got)
	}
	if !reflect.DeepEqual(got.Versions, map[string]string{"fr": "v3"}) {
		t.Fatalf("versions=%v", got.Versions)
	}
}

func TestFromYAML(t *testing.T) {
	doc := `
enabled: true
prefix: bundles_
expirationTime: 3600000
quietWindow: 2s
versions:
  en: v1
  fr: 2
  de: [bad]
`
	got, err := FromYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	want := Config{
		Enabled:     true,
		Prefix:      "bundles_",
		Expiration:  time.Hour,
		Versions:    map[string]string{"en": "v1", "fr": "2"},
		QuietWindow: 2 * time.Second,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestFromYAMLMalformed(t *testing.T) {
	got, err := FromYAML(strings.NewReader("expirationTime: forever\nenabled: maybe\n"))
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	if !reflect.DeepEqual(got, Default()) {
		t.Fatalf("got %+v", got)
	}

	got, err = FromYAML(strings.NewReader("{not yaml"))
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if !reflect.DeepEqual(got, Default()) {
		t.Fatalf("defaults expected alongside the error, got %+v", got)
	}

	if got, err := FromYAML(strings.NewReader("")); err != nil || !reflect.DeepEqual(got, Default()) {
		t.Fatalf("empty doc: got %+v err %v", got, err)
	}
}

func TestApply(t *testing.T) {
	cfg := Default()
	cfg.Enabled = true
	cfg.Versions["en"] = "v1"

	var o bundlecache.Options
	cfg.Apply(&o)
	if !o.Enabled || o.Prefix != bundlecache.DefaultPrefix || o.Expiration != bundlecache.DefaultExpiration {
		t.Fatalf("options %+v", o)
	}
	cfg.Versions["en"] = "v2"
	if o.Versions["en"] != "v1" {
		t.Fatalf("Apply must copy versions")
	}
}

func TestYAMLFloatMillis(t *testing.T) {
	got, err := FromYAML(strings.NewReader("expirationTime: 6.048e8\nquietWindow: 1000.0\n"))
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	if got.Expiration != 7*24*time.Hour || got.QuietWindow != time.Second {
		t.Fatalf("got expiration=%v quietWindow=%v", got.Expiration, got.QuietWindow)
	}

	got, _ = FromYAML(strings.NewReader("expirationTime: 1.5\n"))
	if got.Expiration != Default().Expiration {
		t.Fatalf("fractional millis should fall back, got %v", got.Expiration)
	}
}

func TestZeroExpirationExpiresImmediately(t *testing.T) {
	for name, cfg := range map[string]func() Config{
		"yaml": func() Config {
			cfg, err := FromYAML(strings.NewReader("expirationTime: 0\n"))
			if err != nil {
				t.Fatalf("FromYAML: %v", err)
			}
			return cfg
		},
		"env": func() Config {
			return fromEnv(envOpts(map[string]string{"BUNDLECACHE_EXPIRATION_TIME": "0"}))
		},
	} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			c := cfg()
			if c.Expiration != 0 {
				t.Fatalf("explicit zero parsed as %v", c.Expiration)
			}

			p, err := bigcache.New(bigcache.Config{})
			if err != nil {
				t.Fatal(err)
			}
			now := time.UnixMilli(1_760_000_000_000)
			opts := bundlecache.Options{Provider: p, Now: func() time.Time { return now }}
			c.Apply(&opts)
			if opts.Expiration != bundlecache.ExpireImmediately {
				t.Fatalf("Apply passed expiration %v", opts.Expiration)
			}
			cc, err := bundlecache.New(opts)
			if err != nil {
				t.Fatal(err)
			}
			defer cc.Close(ctx)

			if err := cc.Store(ctx, map[string]bundlecache.Bundle{"en": {"a": "b"}}); err != nil {
				t.Fatalf("Store: %v", err)
			}
			now = now.Add(time.Millisecond)
			got, err := cc.Load(ctx, []string{"en"})
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(got) != 0 {
				t.Fatalf("zero TTL entry served 1ms after write: %v", got)
			}
		})
	}
}
