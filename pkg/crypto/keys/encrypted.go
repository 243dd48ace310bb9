package keys

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/vesna-dev/vesna-go/pkg/encoding/base58"
	"golang.org/x/crypto/scrypt"
	"golang.org/x/text/unicode/norm"
)

// encryptedVersion is the version byte of encrypted key strings.
const encryptedVersion = 0xA9

const (
	saltSize  = 8
	nonceSize = 12
	// Seed plus the GCM tag.
	sealedSize = ed25519.SeedSize + 16
)

// ScryptParams is a json-serializable container for scrypt KDF parameters.
type ScryptParams struct {
	N int `json:"n" yaml:"n"`
	R int `json:"r" yaml:"r"`
	P int `json:"p" yaml:"p"`
}

// DefaultScryptParams are the params used to encrypt or decrypt keys when
// no other options are given.
func DefaultScryptParams() ScryptParams {
	return ScryptParams{N: 16384, R: 8, P: 8}
}

// Encrypt encrypts the seed of the private key under the given passphrase
// using scrypt-derived AES-256-GCM and returns the base58check encoded
// result.
func Encrypt(priv *PrivateKey, passphrase string, params ScryptParams) (s string, err error) {
	var salt [saltSize]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return "", err
	}
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", err
	}

	gcm, err := deriveCipher(passphrase, salt[:], params)
	if err != nil {
		return "", err
	}
	sealed := gcm.Seal(nil, nonce[:], priv.Bytes(), nil)

	buf := make([]byte, 0, 1+saltSize+nonceSize+sealedSize)
	buf = append(buf, encryptedVersion)
	buf = append(buf, salt[:]...)
	buf = append(buf, nonce[:]...)
	buf = append(buf, sealed...)

	return base58.CheckEncode(buf), nil
}

// Decrypt decrypts an encrypted key string using the given passphrase,
// returning the private key it protects.
func Decrypt(key string, passphrase string, params ScryptParams) (*PrivateKey, error) {
	b, err := base58.CheckDecode(key)
	if err != nil {
		return nil, err
	}
	if len(b) != 1+saltSize+nonceSize+sealedSize {
		return nil, fmt.Errorf("invalid encrypted key length, got %d", len(b))
	}
	if b[0] != encryptedVersion {
		return nil, fmt.Errorf("invalid encrypted key version got %d, expected %d",
			b[0], encryptedVersion)
	}
	salt := b[1 : 1+saltSize]
	nonce := b[1+saltSize : 1+saltSize+nonceSize]
	sealed := b[1+saltSize+nonceSize:]

	gcm, err := deriveCipher(passphrase, salt, params)
	if err != nil {
		return nil, err
	}
	seed, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, errors.New("wrong passphrase or corrupted key")
	}

	return NewPrivateKeyFromBytes(seed)
}

func deriveCipher(passphrase string, salt []byte, params ScryptParams) (cipher.AEAD, error) {
	phraseNorm := norm.NFC.Bytes([]byte(passphrase))
	dk, err := scrypt.Key(phraseNorm, salt, params.N, params.R, params.P, 32)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(dk)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
