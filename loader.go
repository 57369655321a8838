package bundlecache

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/unkn0wn-root/bundlecache/internal/util"
	"github.com/unkn0wn-root/bundlecache/internal/wire"
)

// candidate is one fetched language on its way through the filters.
type candidate struct {
	lang   string
	entry  wire.Entry
	reason string // non-empty when the fetch already ruled it out
}

func (c *cache) Load(ctx context.Context, languages []string) (map[string]Bundle, error) {
	langs := util.Languages(languages)
	cands := make([]candidate, len(langs))

	g, gctx := errgroup.WithContext(ctx)
	for i, lng := range langs {
		g.Go(func() error {
			cand, err := c.fetch(gctx, lng)
			if err != nil {
				return err
			}
			cands[i] = cand
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := c.nowMillis()
	cands = c.present(cands)
	cands = c.fresh(cands, now)
	cands = c.current(cands)

	out := make(map[string]Bundle, len(cands))
	for _, cd := range cands {
		out[cd.lang] = Bundle(cd.entry.Bundle)
	}
	return out, nil
}

func (c *cache) LoadFunc(ctx context.Context, languages []string, cb func(error, map[string]Bundle)) {
	out, err := c.Load(ctx, languages)
	if err != nil {
		cb(err, nil)
		return
	}
	cb(nil, out)
}

// fetch reads and decodes one language. Only a provider error is returned;
// a record that does not decode is deleted best-effort and reported as corrupt.
func (c *cache) fetch(ctx context.Context, lng string) (candidate, error) {
	k := c.key(lng)
	raw, ok, err := c.provider.Get(ctx, k)
	if err != nil {
		return candidate{}, &StoreReadError{Language: lng, Key: k, Err: err}
	}
	if !ok || raw == nil {
		return candidate{lang: lng, reason: ReasonAbsent}, nil
	}

	rec, err := c.codec.Decode(raw)
	if err == nil && rec == nil {
		// stored null
		return candidate{lang: lng, reason: ReasonAbsent}, nil
	}
	var e wire.Entry
	if err == nil {
		e, err = wire.Unflatten(rec)
	}
	if err != nil {
		if delErr := c.provider.Del(ctx, k); delErr != nil {
			c.log.Warn("self-heal delete failed", Fields{"lang": lng, "key": k, "err": delErr})
		}
		c.log.Debug("dropped undecodable entry", Fields{"lang": lng, "err": err})
		return candidate{lang: lng, reason: ReasonCorrupt}, nil
	}
	return candidate{lang: lng, entry: e}, nil
}

// present drops languages with no usable record or an empty bundle.
func (c *cache) present(in []candidate) []candidate {
	out := in[:0]
	for _, cd := range in {
		reason := cd.reason
		if reason == "" && len(cd.entry.Bundle) == 0 {
			reason = ReasonEmpty
		}
		if reason != "" {
			c.reject(cd.lang, reason)
			continue
		}
		out = append(out, cd)
	}
	return out
}

// fresh drops entries older than the TTL: now > writtenAt + ttl.
func (c *cache) fresh(in []candidate, now int64) []candidate {
	ttl := c.ttl.Milliseconds()
	out := in[:0]
	for _, cd := range in {
		if now > cd.entry.WrittenAt+ttl {
			c.reject(cd.lang, ReasonExpired)
			continue
		}
		out = append(out, cd)
	}
	return out
}

// current drops entries whose version tag differs from the configured one.
// Absent on both sides matches; absent on one side does not.
func (c *cache) current(in []candidate) []candidate {
	out := in[:0]
	for _, cd := range in {
		want, configured := c.versions[cd.lang]
		if configured != cd.entry.HasVersion || (configured && want != cd.entry.Version) {
			c.reject(cd.lang, ReasonVersionMismatch)
			continue
		}
		out = append(out, cd)
	}
	return out
}

func (c *cache) reject(lng, reason string) {
	c.log.Debug("cache entry rejected", Fields{"lang": lng, "reason": reason})
	c.hooks.EntryRejected(lng, reason)
}
