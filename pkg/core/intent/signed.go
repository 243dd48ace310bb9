package intent

import (
	"github.com/vesna-dev/vesna-go/pkg/crypto/keys"
	"github.com/vesna-dev/vesna-go/pkg/io"
)

// Signed couples a value with an ed25519 signature made over the value's
// canonical encoding.
type Signed[T io.Serializable] struct {
	Data T
	Sig  keys.Signature
}

// SignData encodes data and signs the result with the given key.
func SignData[T io.Serializable](priv *keys.PrivateKey, data T) (*Signed[T], error) {
	b, err := io.ToByteArray(data)
	if err != nil {
		return nil, err
	}
	return &Signed[T]{
		Data: data,
		Sig:  priv.Sign(b),
	}, nil
}

// Verify checks that Sig is a valid signature of Data's canonical encoding
// by the given key.
func (s *Signed[T]) Verify(pub *keys.PublicKey) bool {
	b, err := io.ToByteArray(s.Data)
	if err != nil {
		return false
	}
	return pub.Verify(b, s.Sig)
}

// EncodeBinary implements the io.Serializable interface.
func (s *Signed[T]) EncodeBinary(w *io.BinWriter) {
	s.Data.EncodeBinary(w)
	s.Sig.EncodeBinary(w)
}

// DecodeBinary implements the io.Serializable interface. Data must be set to
// a decodable (non-nil) value before the call.
func (s *Signed[T]) DecodeBinary(r *io.BinReader) {
	s.Data.DecodeBinary(r)
	s.Sig.DecodeBinary(r)
}
