package transaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vesna-dev/vesna-go/internal/testserdes"
	"github.com/vesna-dev/vesna-go/pkg/crypto/keys"
)

func testKey(t *testing.T) *keys.PrivateKey {
	priv, err := keys.NewPrivateKeyFromHex(
		"9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	require.NoError(t, err)
	return priv
}

func TestTransactionSerializable(t *testing.T) {
	t.Run("code only", func(t *testing.T) {
		tx := NewRaw([]byte{0xde, 0xad}, nil)
		testserdes.EncodeDecodeBinary(t, tx, new(Transaction))
	})
	t.Run("code and data", func(t *testing.T) {
		tx := NewRaw([]byte{0xde, 0xad}, []byte{0xbe, 0xef})
		testserdes.EncodeDecodeBinary(t, tx, new(Transaction))
	})
	t.Run("signed", func(t *testing.T) {
		tx := NewRaw([]byte{0xde, 0xad}, []byte{0xbe, 0xef}).Sign(testKey(t))
		testserdes.EncodeDecodeBinary(t, tx, new(Transaction))
	})
	t.Run("empty payload differs from absent", func(t *testing.T) {
		withEmpty := NewRaw([]byte{0xde, 0xad}, []byte{})
		without := NewRaw([]byte{0xde, 0xad}, nil)
		require.NotEqual(t, withEmpty.Bytes(), without.Bytes())

		decoded, err := NewTransactionFromBytes(withEmpty.Bytes())
		require.NoError(t, err)
		require.NotNil(t, decoded.Data)
		require.Equal(t, 0, len(decoded.Data))
	})
}

func TestTransactionFromBytes(t *testing.T) {
	tx := NewRaw([]byte{0x01}, []byte{0x02}).Sign(testKey(t))
	data := tx.Bytes()

	decoded, err := NewTransactionFromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, tx.Code, decoded.Code)
	assert.Equal(t, tx.Data, decoded.Data)
	assert.Equal(t, tx.Signature, decoded.Signature)
	assert.Equal(t, tx.Hash(), decoded.Hash())

	t.Run("trailing bytes", func(t *testing.T) {
		_, err := NewTransactionFromBytes(append(data, 0x00))
		require.Error(t, err)
	})
	t.Run("truncated", func(t *testing.T) {
		_, err := NewTransactionFromBytes(data[:len(data)-1])
		require.Error(t, err)
	})
}

func TestTransactionSign(t *testing.T) {
	priv := testKey(t)
	pub := priv.PublicKey()

	unsigned := NewRaw([]byte{0x01, 0x02}, []byte{0x03})
	require.Nil(t, unsigned.Signature)
	assert.False(t, unsigned.VerifySignature(pub))

	signed := unsigned.Sign(priv)
	require.NotNil(t, signed.Signature)
	assert.True(t, signed.VerifySignature(pub))

	// The original stays unsigned.
	require.Nil(t, unsigned.Signature)

	// Re-signing replaces the signature, it never accumulates.
	resigned := signed.Sign(priv)
	require.NotNil(t, resigned.Signature)
	assert.Equal(t, signed.Bytes(), resigned.Bytes())

	// Signing covers code and data only, so both carry the same signature
	// over equal content.
	assert.Equal(t, unsigned.SigningBytes(), signed.SigningBytes())

	other, err := keys.NewPrivateKey()
	require.NoError(t, err)
	assert.False(t, signed.VerifySignature(other.PublicKey()))
}

func TestTransactionHashStable(t *testing.T) {
	priv := testKey(t)

	one := NewRaw([]byte{0x01}, []byte{0x02}).Sign(priv)
	two := NewRaw([]byte{0x01}, []byte{0x02}).Sign(priv)

	// Equal content hashes equally, and the cached value doesn't drift.
	assert.Equal(t, one.Hash(), two.Hash())
	assert.Equal(t, one.Hash(), one.Hash())

	// The signature is part of the broadcast bytes and so of the hash.
	unsigned := NewRaw([]byte{0x01}, []byte{0x02})
	assert.NotEqual(t, unsigned.Hash(), one.Hash())
}
