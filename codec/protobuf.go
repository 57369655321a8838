package codec

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type Protobuf[T proto.Message] struct {
	new func() T // constructor for a concrete message (e.g., func() *structpb.Struct { return &structpb.Struct{} })
}

func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return proto.Marshal(v)
}
func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}

var structMessage = NewProtobuf(func() *structpb.Struct { return &structpb.Struct{} })

// Struct stores records as google.protobuf.Struct. All numbers travel as
// double, which is exact for epoch-millisecond stamps.
// The zero value is ready to use.
type Struct struct{}

var _ Codec[Record] = Struct{}

func (Struct) Encode(r Record) ([]byte, error) {
	s, err := structpb.NewStruct(r)
	if err != nil {
		return nil, err
	}
	return structMessage.Encode(s)
}

func (Struct) Decode(b []byte) (Record, error) {
	s, err := structMessage.Decode(b)
	if err != nil {
		return nil, err
	}
	return s.AsMap(), nil
}
