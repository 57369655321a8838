package util

// StorageKey returns the provider key for a language: prefix + language.
//
// No delimiter or escaping is applied. Keys stay injective for a fixed prefix
// only as long as language identifiers do not embed another prefix; existing
// stored data depends on this exact layout, so it must not change.
func StorageKey(prefix, language string) string {
	return prefix + language
}

// Languages returns the distinct, non-empty languages in first-seen order.
func Languages(langs []string) []string {
	out := make([]string, 0, len(langs))
	seen := make(map[string]struct{}, len(langs))
	for _, l := range langs {
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
