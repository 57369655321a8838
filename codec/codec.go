package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// Record is the decoded shape of one persisted entry: bundle keys plus the
// cache's metadata fields, flat. Number types vary by codec.
type Record = map[string]any
