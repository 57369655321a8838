// Package bundlecache caches localization resource bundles in a key-value
// store, one record per language, between a localization framework and its
// remote bundle source.
//
// Components:
//   - Provider: byte store (Redis, Valkey, BigCache, Ristretto).
//   - Codec: (de)serializes the flat record map <-> []byte (JSON by default).
//   - Load: concurrent per-language reads, then presence -> freshness ->
//     version filters. One failed read fails the batch.
//   - Store: concurrent per-language writes stamped with the write time and
//     the configured version tag. Failures are collected, never retried.
//   - Save: trailing-edge debounce in front of Store.
//
// Keys:
//
//	<prefix><language>   e.g. i18next_fres_en
//
// Records:
//
//	{ "<key>": "<translation>", ..., "i18nStamp": <epoch ms>, "i18nVersion": "<tag>" }
//
// Typical host flow:
//
//	hits, err := cache.Load(ctx, []string{"en", "fr"})
//	// fetch the languages missing from hits elsewhere, then:
//	cache.Save(fetched)
package bundlecache
