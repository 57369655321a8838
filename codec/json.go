package codec

import (
	"bytes"
	"encoding/json"
)

// JSON is the default record codec. Numbers decoded into any are kept as
// json.Number so millisecond stamps never pass through float64.
type JSON[V any] struct{}

var _ Codec[Record] = JSON[Record]{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	err := dec.Decode(&v)
	return v, err
}
