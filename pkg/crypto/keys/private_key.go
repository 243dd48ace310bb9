package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/vesna-dev/vesna-go/pkg/util"
)

// PrivateKey represents a Vesna private key and provides a high level API
// around the underlying ed25519 key.
type PrivateKey struct {
	ed25519.PrivateKey
}

// NewPrivateKey creates a new random private key.
func NewPrivateKey() (*PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{priv}, nil
}

// NewPrivateKeyFromHex returns a PrivateKey created from the given hex-encoded
// seed.
func NewPrivateKeyFromHex(str string) (*PrivateKey, error) {
	b, err := hex.DecodeString(str)
	if err != nil {
		return nil, err
	}
	return NewPrivateKeyFromBytes(b)
}

// NewPrivateKeyFromBytes returns a PrivateKey created from the given 32 byte
// seed.
func NewPrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != ed25519.SeedSize {
		return nil, fmt.Errorf(
			"invalid byte length: expected %d bytes got %d", ed25519.SeedSize, len(b))
	}
	return &PrivateKey{ed25519.NewKeyFromSeed(b)}, nil
}

// NewPrivateKeyFromKIF returns a PrivateKey created from the given key import
// format string.
func NewPrivateKeyFromKIF(kif string) (*PrivateKey, error) {
	k, err := KIFDecode(kif, KIFVersion)
	if err != nil {
		return nil, err
	}
	return k.S, nil
}

// PublicKey derives the public key for the private key.
func (p *PrivateKey) PublicKey() *PublicKey {
	var pub PublicKey
	copy(pub[:], p.PrivateKey.Public().(ed25519.PublicKey))
	return &pub
}

// Sign signs arbitrary data using the private key and returns the detached
// signature.
func (p *PrivateKey) Sign(data []byte) Signature {
	var sig Signature
	copy(sig[:], ed25519.Sign(p.PrivateKey, data))
	return sig
}

// GetAccountHash returns the account hash of the corresponding public key.
func (p *PrivateKey) GetAccountHash() util.Uint160 {
	return p.PublicKey().AccountHash()
}

// Address derives the account address for the private key.
func (p *PrivateKey) Address() string {
	return p.PublicKey().Address()
}

// KIF returns the key import format string of the PrivateKey.
func (p *PrivateKey) KIF() string {
	w, err := KIFEncode(p.Bytes(), KIFVersion)
	if err != nil {
		panic(err)
	}
	return w
}

// Bytes returns the seed of the private key.
func (p *PrivateKey) Bytes() []byte {
	return p.PrivateKey.Seed()
}

// String returns a hex string representation of the private key seed.
func (p *PrivateKey) String() string {
	return hex.EncodeToString(p.Bytes())
}

// Destroy wipes the contents of the private key from memory. Any operations
// with the key after call to Destroy have undefined behavior.
func (p *PrivateKey) Destroy() {
	for i := range p.PrivateKey {
		p.PrivateKey[i] = 0
	}
}
