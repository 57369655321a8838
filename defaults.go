package bundlecache

import "time"

const (
	DefaultPrefix       = "i18next_fres_"
	DefaultExpiration   = 7 * 24 * time.Hour
	DefaultQuietWindow  = 10 * time.Second
	DefaultStoreTimeout = 30 * time.Second
)

// ExpireImmediately as Options.Expiration sets a TTL of zero: an entry is
// valid only within the millisecond it was written. Any negative value does
// the same; zero means DefaultExpiration.
const ExpireImmediately time.Duration = -1

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

func expiration(v time.Duration) time.Duration {
	switch {
	case v < 0:
		return 0
	case v == 0:
		return DefaultExpiration
	}
	return v
}

func positive(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}
