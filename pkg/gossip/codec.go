/*
Package gossip implements the client side of the intent gossip service.

The service speaks gRPC carrying the same canonical binary encoding used
everywhere else instead of protobuf, so there is no generated code: message
types implement io.Serializable and a custom codec plugs them into the gRPC
call machinery.
*/
package gossip

import (
	"fmt"

	"github.com/vesna-dev/vesna-go/pkg/io"
	"google.golang.org/grpc/encoding"
)

const codecName = "vesna-bin"

// BinaryCodec implements the grpc/encoding.Codec interface over the
// canonical binary serialization.
type BinaryCodec struct{}

// Marshal implements the encoding.Codec interface.
func (BinaryCodec) Marshal(v any) ([]byte, error) {
	s, ok := v.(io.Serializable)
	if !ok {
		return nil, fmt.Errorf("can't marshal %T: not serializable", v)
	}
	return io.ToByteArray(s)
}

// Unmarshal implements the encoding.Codec interface.
func (BinaryCodec) Unmarshal(data []byte, v any) error {
	s, ok := v.(io.Serializable)
	if !ok {
		return fmt.Errorf("can't unmarshal %T: not serializable", v)
	}
	return io.FromByteArray(s, data)
}

// Name implements the encoding.Codec interface.
func (BinaryCodec) Name() string { return codecName }

func init() {
	encoding.RegisterCodec(BinaryCodec{})
}
