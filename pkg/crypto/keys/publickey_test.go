package keys

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vesna-dev/vesna-go/internal/keytestcases"
	"github.com/vesna-dev/vesna-go/internal/testserdes"
)

func TestEncodeDecodePublicKey(t *testing.T) {
	for i := 0; i < 4; i++ {
		k, err := NewPrivateKey()
		require.NoError(t, err)
		p := k.PublicKey()
		testserdes.EncodeDecodeBinary(t, p, new(PublicKey))
	}
}

func TestPublicKeyFromString(t *testing.T) {
	for _, testCase := range keytestcases.Arr {
		pub, err := NewPublicKeyFromString(testCase.PublicKey)
		if testCase.Invalid {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, testCase.PublicKey, pub.String())
		assert.Equal(t, testCase.Address, pub.Address())
	}

	_, err := NewPublicKeyFromString("02b3622bf4017bdfe317c58aed5f4c753f206b7db896046fa7d774bbc4bf7f8dc2")
	require.Error(t, err)
}

func TestPublicKeyJSON(t *testing.T) {
	priv, err := NewPrivateKey()
	require.NoError(t, err)
	pub := priv.PublicKey()

	testserdes.MarshalUnmarshalJSON(t, pub, new(PublicKey))

	var actual PublicKey
	require.Error(t, actual.UnmarshalJSON([]byte(`123`)))
	require.Error(t, actual.UnmarshalJSON([]byte(`"zzzz"`)))
}

func TestPublicKeyVerify(t *testing.T) {
	priv, err := NewPrivateKey()
	require.NoError(t, err)
	pub := priv.PublicKey()

	msg := []byte("test message")
	sig := priv.Sign(msg)
	assert.True(t, pub.Verify(msg, sig))

	other, err := NewPrivateKey()
	require.NoError(t, err)
	assert.False(t, other.PublicKey().Verify(msg, sig))

	sig[0] ^= 0xff
	assert.False(t, pub.Verify(msg, sig))
}

func TestPublicKeyCmp(t *testing.T) {
	pubs := make([]*PublicKey, 0, len(keytestcases.Arr))
	for _, testCase := range keytestcases.Arr {
		if testCase.Invalid {
			continue
		}
		pub, err := NewPublicKeyFromString(testCase.PublicKey)
		require.NoError(t, err)
		pubs = append(pubs, pub)
	}

	sort.Slice(pubs, func(i, j int) bool { return pubs[i].Cmp(pubs[j]) < 0 })
	for i := 1; i < len(pubs); i++ {
		assert.True(t, pubs[i-1].Cmp(pubs[i]) < 0)
		assert.False(t, pubs[i-1].Equal(pubs[i]))
	}
	assert.True(t, pubs[0].Equal(pubs[0]))
}
