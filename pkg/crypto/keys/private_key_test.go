package keys

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vesna-dev/vesna-go/internal/keytestcases"
)

func TestPrivateKey(t *testing.T) {
	for _, testCase := range keytestcases.Arr {
		privKey, err := NewPrivateKeyFromHex(testCase.PrivateKey)
		if testCase.Invalid {
			assert.Error(t, err)
			continue
		}
		assert.NoError(t, err)
		address := privKey.Address()
		assert.Equal(t, testCase.Address, address)
		pubKey := privKey.PublicKey()
		assert.Equal(t, testCase.PublicKey, hex.EncodeToString(pubKey.Bytes()))
		assert.Equal(t, testCase.PrivateKey, privKey.String())
	}
}

func TestPrivateKeyFromKIF(t *testing.T) {
	for _, testCase := range keytestcases.Arr {
		key, err := NewPrivateKeyFromKIF(testCase.Kif)
		if testCase.Invalid {
			assert.Error(t, err)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, testCase.PrivateKey, key.String())
		assert.Equal(t, testCase.Kif, key.KIF())
	}
}

// Detached signatures of the first RFC 8032 test messages.
func TestSignRFC8032(t *testing.T) {
	cases := []struct {
		seed string
		msg  string
		sig  string
	}{
		{
			seed: "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60",
			msg:  "",
			sig: "e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e06522490155" +
				"5fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b",
		},
		{
			seed: "4ccd089b28ff96da9db6c346ec114e0f5b8a319f35aba624da8cf6ed4fb8a6fb",
			msg:  "72",
			sig: "92a009a9f0d4cab8720e820b5f642540a2b27b5416503f8fb3762223ebdb69da" +
				"085ac1e43e15996e458f3613d0f11d8c387b2eaeb4302aeeb00d291612bb0c00",
		},
		{
			seed: "c5aa8df43f9f837bedb7442f31dcb7b166d38535076f094b85ce3a2e0b4458f7",
			msg:  "af82",
			sig: "6291d657deec24024827e69c3abe01a30ce548a284743a445e3680d7db5ac3ac" +
				"18ff9b538d16f290ae67f760984dc6594a7c15e9716ed28dc027beceea1ec40a",
		},
	}
	for _, c := range cases {
		privKey, err := NewPrivateKeyFromHex(c.seed)
		require.NoError(t, err)
		msg, err := hex.DecodeString(c.msg)
		require.NoError(t, err)

		sig := privKey.Sign(msg)
		assert.Equal(t, c.sig, sig.String())
		assert.True(t, privKey.PublicKey().Verify(msg, sig))
	}
}

func TestNewPrivateKey(t *testing.T) {
	one, err := NewPrivateKey()
	require.NoError(t, err)
	two, err := NewPrivateKey()
	require.NoError(t, err)
	require.NotEqual(t, one.Bytes(), two.Bytes())
}

func TestNewPrivateKeyFromBytes(t *testing.T) {
	b := make([]byte, 31)
	_, err := NewPrivateKeyFromBytes(b)
	require.Error(t, err)
}

func TestDestroy(t *testing.T) {
	priv, err := NewPrivateKey()
	require.NoError(t, err)
	seed := make([]byte, len(priv.Bytes()))
	copy(seed, priv.Bytes())

	priv.Destroy()
	require.NotEqual(t, seed, priv.Bytes())
}
