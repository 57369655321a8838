package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// recordNesting bounds decode depth. Stored records are flat maps of
// strings plus two scalars, so anything deeper is garbage.
const recordNesting = 16

// CBOR encodes with fxamacker/cbor. Build it with NewCBOR or MustCBOR; the
// zero value has no modes and panics.
//
// Deterministic mode (RFC 8949 core deterministic encoding) sorts map keys,
// so the same bundle always produces the same bytes. That costs a sort per
// write and is only worth it when stored bytes are compared or hashed.
type CBOR[V any] struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ Codec[Record] = CBOR[Record]{}

func NewCBOR[V any](deterministic bool) (CBOR[V], error) {
	eo := cbor.PreferredUnsortedEncOptions()
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	}
	em, err := eo.EncMode()
	if err != nil {
		return CBOR[V]{}, err
	}

	// Untyped maps must come back keyed by string or wire.Unflatten
	// cannot read them.
	do := cbor.DecOptions{
		DefaultMapType:  reflect.TypeOf(Record(nil)),
		MaxNestedLevels: recordNesting,
	}
	dm, err := do.DecMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	return CBOR[V]{enc: em, dec: dm}, nil
}

// MustCBOR panics if the options are rejected.
func MustCBOR[V any](deterministic bool) CBOR[V] {
	c, err := NewCBOR[V](deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

func (c CBOR[V]) Encode(v V) ([]byte, error) { return c.enc.Marshal(v) }

func (c CBOR[V]) Decode(b []byte) (V, error) {
	var v V
	if err := c.dec.Unmarshal(b, &v); err != nil {
		var zero V
		return zero, err
	}
	return v, nil
}
