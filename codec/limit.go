package codec

import (
	"errors"
	"fmt"
)

var ErrTooLarge = errors.New("codec: payload too large")

// LimitCodec caps the size of stored records accepted at Decode time.
// Encode is forwarded to Inner unchanged. MaxDecode <= 0 disables the cap.
//
// A record over the cap is reported like any other undecodable record, so the
// cache treats the language as not cached and deletes the oversized value.
type LimitCodec[V any] struct {
	Inner     Codec[V]
	MaxDecode int
}

var _ Codec[Record] = LimitCodec[Record]{}

func (c LimitCodec[V]) Encode(v V) ([]byte, error) { return c.Inner.Encode(v) }
func (c LimitCodec[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("%w: %d > %d", ErrTooLarge, len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
