package bundlecache

import (
	"fmt"
	"sort"
	"strings"
)

// StoreReadError fails a whole Load: one provider read failed, so no
// languages are returned.
type StoreReadError struct {
	Language string
	Key      string
	Err      error
}

func (e *StoreReadError) Error() string {
	return fmt.Sprintf("bundlecache: load %q (key %q): %v", e.Language, e.Key, e.Err)
}

func (e *StoreReadError) Unwrap() error { return e.Err }

// StoreWriteError reports the languages whose writes failed in one Store.
// Languages not listed were written.
type StoreWriteError struct {
	Failures map[string]error
}

func (e *StoreWriteError) Languages() []string {
	out := make([]string, 0, len(e.Failures))
	for l := range e.Failures {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

func (e *StoreWriteError) Error() string {
	langs := e.Languages()
	parts := make([]string, 0, len(langs))
	for _, l := range langs {
		parts = append(parts, fmt.Sprintf("%s: %v", l, e.Failures[l]))
	}
	return fmt.Sprintf("bundlecache: store failed for %d language(s): %s",
		len(langs), strings.Join(parts, "; "))
}

func (e *StoreWriteError) Unwrap() []error {
	langs := e.Languages()
	errs := make([]error, 0, len(langs))
	for _, l := range langs {
		errs = append(errs, e.Failures[l])
	}
	return errs
}
