package wire

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestFlattenUnflattenKeepsMetadataSeparate(t *testing.T) {
	cases := []Entry{
		{Bundle: map[string]string{"hello": "Bonjour"}, WrittenAt: 1700000000000},
		{Bundle: map[string]string{"a": "1", "b": "2"}, WrittenAt: 42, Version: "v3", HasVersion: true},
		{Bundle: map[string]string{}, WrittenAt: 0, Version: "", HasVersion: true},
	}
	for _, want := range cases {
		rec := Flatten(want)
		if _, ok := rec[VersionField]; ok != want.HasVersion {
			t.Fatalf("version field present=%v want %v", ok, want.HasVersion)
		}
		got, err := Unflatten(rec)
		if err != nil {
			t.Fatalf("Unflatten: %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("got %+v want %+v", got, want)
		}
	}
}

func TestFlattenMetadataWinsOverBundleKey(t *testing.T) {
	rec := Flatten(Entry{
		Bundle:    map[string]string{StampField: "user value", "k": "v"},
		WrittenAt: 7,
	})
	if rec[StampField] != int64(7) {
		t.Fatalf("stamp overwritten by bundle key: %v", rec[StampField])
	}
	e, err := Unflatten(rec)
	if err != nil {
		t.Fatalf("Unflatten: %v", err)
	}
	if _, ok := e.Bundle[StampField]; ok {
		t.Fatalf("metadata leaked into bundle: %v", e.Bundle)
	}
}

func TestUnflattenCorrupt(t *testing.T) {
	cases := map[string]map[string]any{
		"nil":             nil,
		"no_stamp":        {"hello": "hi"},
		"stamp_not_num":   {StampField: true, "hello": "hi"},
		"stamp_fraction":  {StampField: 1.5},
		"version_not_str": {StampField: int64(1), VersionField: 3},
		"value_not_str":   {StampField: int64(1), "nested": map[string]any{"x": "y"}},
	}
	for name, rec := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Unflatten(rec); !errors.Is(err, ErrCorrupt) {
				t.Fatalf("want ErrCorrupt, got %v", err)
			}
		})
	}
}

func TestUnflattenNumericShapes(t *testing.T) {
	for _, v := range []any{
		int64(1700000000000), float64(1700000000000), uint64(1700000000000),
		json.Number("1700000000000"), "1700000000000",
	} {
		e, err := Unflatten(map[string]any{StampField: v})
		if err != nil {
			t.Fatalf("%T: %v", v, err)
		}
		if e.WrittenAt != 1700000000000 {
			t.Fatalf("%T: got %d", v, e.WrittenAt)
		}
	}
	if e, err := Unflatten(map[string]any{StampField: uint8(9)}); err != nil || e.WrittenAt != 9 {
		t.Fatalf("uint8: e=%+v err=%v", e, err)
	}
}

func TestUnflattenNilVersionIsAbsent(t *testing.T) {
	e, err := Unflatten(map[string]any{StampField: int64(1), VersionField: nil})
	if err != nil {
		t.Fatalf("Unflatten: %v", err)
	}
	if e.HasVersion {
		t.Fatalf("nil version should read as absent")
	}
}
