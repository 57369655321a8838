// Package config loads cache settings from the environment or a YAML file.
// Every field is optional; a missing or malformed value keeps its default.
package config

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/bundlecache"
)

const EnvPrefix = "BUNDLECACHE_"

type Config struct {
	Enabled     bool
	Prefix      string
	Expiration  time.Duration
	Versions    map[string]string
	QuietWindow time.Duration
	StoreURL    string // redis:// URL for the CLI
}

func Default() Config {
	return Config{
		Prefix:      bundlecache.DefaultPrefix,
		Expiration:  bundlecache.DefaultExpiration,
		Versions:    map[string]string{},
		QuietWindow: bundlecache.DefaultQuietWindow,
	}
}

// Apply copies the settings onto o, leaving its other fields alone.
// Expiration 0 is an explicit zero TTL here (Default carries 7 days) and
// becomes bundlecache.ExpireImmediately.
func (c Config) Apply(o *bundlecache.Options) {
	o.Enabled = c.Enabled
	o.Prefix = c.Prefix
	o.Expiration = c.Expiration
	if c.Expiration == 0 {
		o.Expiration = bundlecache.ExpireImmediately
	}
	o.QuietWindow = c.QuietWindow
	o.Versions = make(map[string]string, len(c.Versions))
	for k, v := range c.Versions {
		o.Versions[k] = v
	}
}

// rawEnv is read as strings so one bad variable cannot fail the others.
type rawEnv struct {
	Enabled        string `env:"ENABLED"`
	Prefix         string `env:"PREFIX"`
	ExpirationTime string `env:"EXPIRATION_TIME"`
	Versions       string `env:"VERSIONS"`
	QuietWindow    string `env:"QUIET_WINDOW"`
	StoreURL       string `env:"STORE_URL"`
}

// FromEnv reads BUNDLECACHE_* variables:
//
//	BUNDLECACHE_ENABLED=true
//	BUNDLECACHE_PREFIX=i18next_fres_
//	BUNDLECACHE_EXPIRATION_TIME=604800000   (millis, or a duration like 168h)
//	BUNDLECACHE_VERSIONS=en:v1,fr:v2
//	BUNDLECACHE_QUIET_WINDOW=10000          (millis, or a duration)
//	BUNDLECACHE_STORE_URL=redis://localhost:6379/0
func FromEnv() Config {
	return fromEnv(env.Options{Prefix: EnvPrefix})
}

func fromEnv(opts env.Options) Config {
	cfg := Default()
	var raw rawEnv
	if err := env.ParseWithOptions(&raw, opts); err != nil {
		return cfg
	}
	cfg.Enabled = parseBool(raw.Enabled, cfg.Enabled)
	if raw.Prefix != "" {
		cfg.Prefix = raw.Prefix
	}
	cfg.Expiration = parseMillis(raw.ExpirationTime, cfg.Expiration)
	cfg.QuietWindow = parseMillis(raw.QuietWindow, cfg.QuietWindow)
	cfg.Versions = parseVersions(raw.Versions)
	cfg.StoreURL = raw.StoreURL
	return cfg
}

// FromYAML reads a document such as:
//
//	enabled: true
//	prefix: i18next_fres_
//	expirationTime: 604800000
//	versions: {en: v1, fr: v2}
//
// A document that is not YAML returns defaults and the parse error.
func FromYAML(r io.Reader) (Config, error) {
	cfg := Default()
	var doc map[string]any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}

	if v, ok := doc["enabled"].(bool); ok {
		cfg.Enabled = v
	}
	if v, ok := doc["prefix"].(string); ok && v != "" {
		cfg.Prefix = v
	}
	cfg.Expiration = yamlMillis(doc["expirationTime"], cfg.Expiration)
	cfg.QuietWindow = yamlMillis(doc["quietWindow"], cfg.QuietWindow)
	if m, ok := doc["versions"].(map[string]any); ok {
		for lng, tag := range m {
			switch tag.(type) {
			case string, int, float64, bool:
				cfg.Versions[lng] = fmt.Sprint(tag)
			}
		}
	}
	if v, ok := doc["storeUrl"].(string); ok {
		cfg.StoreURL = v
	}
	return cfg, nil
}

func parseBool(s string, def bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return b
}

// parseMillis accepts integer millis or a Go duration; negative is malformed.
func parseMillis(s string, def time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		if ms < 0 {
			return def
		}
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return def
	}
	return d
}

func yamlMillis(v any, def time.Duration) time.Duration {
	switch n := v.(type) {
	case int:
		if n < 0 {
			return def
		}
		return time.Duration(n) * time.Millisecond
	case float64:
		if n < 0 || n != math.Trunc(n) || n > math.MaxInt64/float64(time.Millisecond) {
			return def
		}
		return time.Duration(n) * time.Millisecond
	case string:
		return parseMillis(n, def)
	default:
		return def
	}
}

// parseVersions reads "en:v1,fr:v2"; pairs without a language or tag are skipped.
func parseVersions(s string) map[string]string {
	out := map[string]string{}
	for _, pair := range strings.Split(s, ",") {
		lng, tag, ok := strings.Cut(strings.TrimSpace(pair), ":")
		lng, tag = strings.TrimSpace(lng), strings.TrimSpace(tag)
		if !ok || lng == "" || tag == "" {
			continue
		}
		out[lng] = tag
	}
	return out
}
