package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack encodes with vmihailenco/msgpack/v5. Ready to use as a zero value.
//
// The write stamp comes back as whatever integer width msgpack picked
// (int8 ... uint64); wire.Unflatten accepts all of them.
type Msgpack[V any] struct{}

var _ Codec[Record] = Msgpack[Record]{}

func (Msgpack[V]) Encode(v V) ([]byte, error) { return msgpack.Marshal(v) }

func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	if err := msgpack.Unmarshal(b, &v); err != nil {
		var zero V
		return zero, err
	}
	return v, nil
}
