// Package keys contains ed25519 key material of the ledger. Accounts are
// identified by a 20-byte hash of their public key, signatures are detached
// 64-byte values over canonical encodings.
package keys

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/vesna-dev/vesna-go/pkg/crypto/hash"
	"github.com/vesna-dev/vesna-go/pkg/encoding/address"
	"github.com/vesna-dev/vesna-go/pkg/io"
	"github.com/vesna-dev/vesna-go/pkg/util"
)

// PublicKeySize is the size of a serialized PublicKey.
const PublicKeySize = ed25519.PublicKeySize

// PublicKey represents a 32 byte ed25519 public key.
type PublicKey [PublicKeySize]byte

// NewPublicKeyFromString returns a public key created from its hex string
// representation.
func NewPublicKeyFromString(s string) (*PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return NewPublicKeyFromBytes(b)
}

// NewPublicKeyFromBytes returns a public key created from the given bytes.
func NewPublicKeyFromBytes(b []byte) (*PublicKey, error) {
	if len(b) != PublicKeySize {
		return nil, fmt.Errorf(
			"invalid byte length: expected %d bytes got %d", PublicKeySize, len(b))
	}
	var pub PublicKey
	copy(pub[:], b)
	return &pub, nil
}

// Bytes returns a byte slice representation of the public key.
func (p *PublicKey) Bytes() []byte {
	return p[:]
}

// String implements the stringer interface.
func (p PublicKey) String() string {
	return hex.EncodeToString(p[:])
}

// Equal returns true in case public keys are equal.
func (p *PublicKey) Equal(other *PublicKey) bool {
	return *p == *other
}

// Cmp compares two public keys byte-wise, it's used for deterministic
// ordering.
func (p *PublicKey) Cmp(other *PublicKey) int {
	return bytes.Compare(p[:], other[:])
}

// Verify reports whether sig is a valid signature of data by p.
func (p *PublicKey) Verify(data []byte, sig Signature) bool {
	return ed25519.Verify(ed25519.PublicKey(p[:]), data, sig[:])
}

// AccountHash returns the 20-byte account hash of the public key. It
// identifies the established account controlled by this key.
func (p *PublicKey) AccountHash() util.Uint160 {
	return hash.Account(p[:])
}

// Address returns the canonical address string of the account controlled by
// this key.
func (p *PublicKey) Address() string {
	return address.Uint160ToString(p.AccountHash())
}

// EncodeBinary implements the io.Serializable interface.
func (p *PublicKey) EncodeBinary(w *io.BinWriter) {
	w.WriteBytes(p[:])
}

// DecodeBinary implements the io.Serializable interface.
func (p *PublicKey) DecodeBinary(r *io.BinReader) {
	r.ReadBytes(p[:])
}

// MarshalJSON implements the json.Marshaler interface.
func (p PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *PublicKey) UnmarshalJSON(data []byte) error {
	var js string
	if err := json.Unmarshal(data, &js); err != nil {
		return err
	}
	pub, err := NewPublicKeyFromString(js)
	if err != nil {
		return err
	}
	*p = *pub
	return nil
}
