// Package i18nbackend wires a bundlecache.Cache in front of a remote bundle
// source and feeds the result into a go-i18n bundle.
//
//	hits := cache.Load(languages)
//	misses -> Fetcher.Fetch -> cache.Save
//	hits + fetched -> i18n.Bundle.AddMessages
//
// When the cache reports Enabled() == false every language is fetched and
// nothing is saved.
package i18nbackend

import (
	"context"
	"fmt"
	"sort"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/unkn0wn-root/bundlecache"
	"github.com/unkn0wn-root/bundlecache/internal/util"
)

// Fetcher loads bundles from the authoritative source. Languages it has no
// bundle for may be left out of the result.
type Fetcher interface {
	Fetch(ctx context.Context, languages []string) (map[string]bundlecache.Bundle, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, languages []string) (map[string]bundlecache.Bundle, error)

func (f FetcherFunc) Fetch(ctx context.Context, languages []string) (map[string]bundlecache.Bundle, error) {
	return f(ctx, languages)
}

type Backend struct {
	cache bundlecache.Cache
	fetch Fetcher
	log   bundlecache.Logger
}

func New(cache bundlecache.Cache, fetch Fetcher, log bundlecache.Logger) *Backend {
	if log == nil {
		log = bundlecache.NopLogger{}
	}
	return &Backend{cache: cache, fetch: fetch, log: log}
}

// Result tells where each language came from.
type Result struct {
	Cached  []string
	Fetched []string
	Missing []string
}

// Load returns bundles for languages, from the cache where valid and from the
// Fetcher otherwise. A cache read failure is logged and treated as all-miss;
// a Fetcher failure is returned. Duplicate and empty languages are dropped.
func (b *Backend) Load(ctx context.Context, languages []string) (map[string]bundlecache.Bundle, Result, error) {
	languages = util.Languages(languages)
	var res Result
	out := make(map[string]bundlecache.Bundle, len(languages))

	if b.cache.Enabled() {
		hits, err := b.cache.Load(ctx, languages)
		if err != nil {
			b.log.Warn("cache load failed; fetching all", bundlecache.Fields{"err": err})
		}
		for lng, bundle := range hits {
			out[lng] = bundle
			res.Cached = append(res.Cached, lng)
		}
	}

	var misses []string
	for _, lng := range languages {
		if _, ok := out[lng]; !ok {
			misses = append(misses, lng)
		}
	}
	if len(misses) > 0 {
		fetched, err := b.fetch.Fetch(ctx, misses)
		if err != nil {
			return nil, res, fmt.Errorf("i18nbackend: fetch %v: %w", misses, err)
		}
		fresh := make(map[string]bundlecache.Bundle, len(fetched))
		for _, lng := range misses {
			bundle, ok := fetched[lng]
			if !ok || len(bundle) == 0 {
				res.Missing = append(res.Missing, lng)
				continue
			}
			out[lng] = bundle
			fresh[lng] = bundle
			res.Fetched = append(res.Fetched, lng)
		}
		if len(fresh) > 0 && b.cache.Enabled() {
			b.cache.Save(fresh)
		}
	}

	sort.Strings(res.Cached)
	sort.Strings(res.Fetched)
	sort.Strings(res.Missing)
	return out, res, nil
}

// LoadInto loads languages and adds every entry to dst as a message whose ID
// is the bundle key and whose Other form is the translation. Language IDs
// that are not valid BCP 47 tags are skipped with a warning.
func (b *Backend) LoadInto(ctx context.Context, dst *i18n.Bundle, languages ...string) (Result, error) {
	bundles, res, err := b.Load(ctx, languages)
	if err != nil {
		return res, err
	}
	for lng, bundle := range bundles {
		tag, err := language.Parse(lng)
		if err != nil {
			b.log.Warn("skipping invalid language tag", bundlecache.Fields{"lang": lng, "err": err})
			continue
		}
		if err := dst.AddMessages(tag, Messages(bundle)...); err != nil {
			return res, fmt.Errorf("i18nbackend: add %s: %w", lng, err)
		}
	}
	return res, nil
}

// Messages converts a bundle to go-i18n messages, sorted by ID.
func Messages(bundle bundlecache.Bundle) []*i18n.Message {
	ids := make([]string, 0, len(bundle))
	for id := range bundle {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	msgs := make([]*i18n.Message, 0, len(ids))
	for _, id := range ids {
		msgs = append(msgs, &i18n.Message{ID: id, Other: bundle[id]})
	}
	return msgs
}
