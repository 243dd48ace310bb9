package keys

import (
	"crypto/ed25519"
	"fmt"

	"github.com/vesna-dev/vesna-go/pkg/encoding/base58"
)

// KIFVersion is the version byte of exported key strings.
const KIFVersion = 0xA3

// KIF represents a decoded key import format string along with the private
// key it carries.
type KIF struct {
	// Version of the key import format.
	Version byte

	// S is the decoded private key.
	S *PrivateKey
}

// KIFEncode encodes the given private key seed into a key import format
// string. The given version is prepended, pass 0x00 to use the default.
func KIFEncode(key []byte, version byte) (string, error) {
	if version == 0x00 {
		version = KIFVersion
	}
	if len(key) != ed25519.SeedSize {
		return "", fmt.Errorf("invalid seed length, got %d", len(key))
	}

	buf := make([]byte, 0, 1+ed25519.SeedSize)
	buf = append(buf, version)
	buf = append(buf, key...)

	return base58.CheckEncode(buf), nil
}

// KIFDecode decodes the given key import format string into a KIF struct.
// The given version is the expected one, pass 0x00 to accept the default.
func KIFDecode(kif string, version byte) (*KIF, error) {
	b, err := base58.CheckDecode(kif)
	if err != nil {
		return nil, err
	}
	if version == 0x00 {
		version = KIFVersion
	}
	if len(b) != 1+ed25519.SeedSize {
		return nil, fmt.Errorf("invalid KIF length, got %d", len(b))
	}
	if b[0] != version {
		return nil, fmt.Errorf("invalid KIF version got %d, expected %d", b[0], version)
	}

	priv, err := NewPrivateKeyFromBytes(b[1:])
	if err != nil {
		return nil, err
	}
	return &KIF{
		Version: b[0],
		S:       priv,
	}, nil
}
