package wire

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
)

// Reserved record fields. Bundle keys with the same name are overwritten on
// write and never returned on read.
const (
	StampField   = "i18nStamp"
	VersionField = "i18nVersion"
)

var ErrCorrupt = errors.New("bundlecache: corrupt entry")

// Entry is one persisted language bundle plus its cache metadata.
type Entry struct {
	Bundle     map[string]string
	WrittenAt  int64 // epoch millis
	Version    string
	HasVersion bool
}

// Record layout (flat, one per language):
//
//	{ <bundle key>: <string>, ..., i18nStamp: <millis>, i18nVersion?: <tag> }
func Flatten(e Entry) map[string]any {
	rec := make(map[string]any, len(e.Bundle)+2)
	for k, v := range e.Bundle {
		rec[k] = v
	}
	rec[StampField] = e.WrittenAt
	if e.HasVersion {
		rec[VersionField] = e.Version
	}
	return rec
}

// Unflatten splits a decoded record back into bundle and metadata.
// A nil record, a missing stamp or a non-string bundle value is ErrCorrupt.
func Unflatten(rec map[string]any) (Entry, error) {
	if rec == nil {
		return Entry{}, ErrCorrupt
	}
	raw, ok := rec[StampField]
	if !ok {
		return Entry{}, ErrCorrupt
	}
	stamp, ok := millis(raw)
	if !ok {
		return Entry{}, ErrCorrupt
	}

	e := Entry{
		Bundle:    make(map[string]string, len(rec)),
		WrittenAt: stamp,
	}
	if v, ok := rec[VersionField]; ok && v != nil {
		tag, ok := v.(string)
		if !ok {
			return Entry{}, ErrCorrupt
		}
		e.Version, e.HasVersion = tag, true
	}
	for k, v := range rec {
		if k == StampField || k == VersionField {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return Entry{}, ErrCorrupt
		}
		e.Bundle[k] = s
	}
	return e, nil
}

// millis normalizes the numeric shapes codecs produce when decoding into any:
// float64 (JSON, structpb), int64/uint64 and narrower ints (msgpack, CBOR).
func millis(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || n > math.MaxInt64 || n < math.MinInt64 {
			return 0, false
		}
		return int64(n), true
	case float32:
		return millis(float64(n))
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}
