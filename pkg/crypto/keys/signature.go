package keys

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/vesna-dev/vesna-go/pkg/io"
)

// SignatureSize is the size of a serialized Signature.
const SignatureSize = ed25519.SignatureSize

// Signature represents a detached 64 byte ed25519 signature.
type Signature [SignatureSize]byte

// NewSignatureFromBytes returns a signature created from the given bytes.
func NewSignatureFromBytes(b []byte) (*Signature, error) {
	if len(b) != SignatureSize {
		return nil, fmt.Errorf(
			"invalid byte length: expected %d bytes got %d", SignatureSize, len(b))
	}
	var sig Signature
	copy(sig[:], b)
	return &sig, nil
}

// Bytes returns a byte slice representation of the signature.
func (s *Signature) Bytes() []byte {
	return s[:]
}

// String implements the stringer interface.
func (s Signature) String() string {
	return hex.EncodeToString(s[:])
}

// EncodeBinary implements the io.Serializable interface.
func (s *Signature) EncodeBinary(w *io.BinWriter) {
	w.WriteBytes(s[:])
}

// DecodeBinary implements the io.Serializable interface.
func (s *Signature) DecodeBinary(r *io.BinReader) {
	r.ReadBytes(s[:])
}

// MarshalJSON implements the json.Marshaler interface.
func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Signature) UnmarshalJSON(data []byte) error {
	var js string
	if err := json.Unmarshal(data, &js); err != nil {
		return err
	}
	b, err := hex.DecodeString(js)
	if err != nil {
		return err
	}
	sig, err := NewSignatureFromBytes(b)
	if err != nil {
		return err
	}
	*s = *sig
	return nil
}
