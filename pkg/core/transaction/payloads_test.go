package transaction

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vesna-dev/vesna-go/internal/testserdes"
	"github.com/vesna-dev/vesna-go/pkg/core/token"
	"github.com/vesna-dev/vesna-go/pkg/crypto/keys"
	"github.com/vesna-dev/vesna-go/pkg/util"
)

func acc(b byte) util.Uint160 {
	var u util.Uint160
	for i := range u {
		u[i] = b
	}
	return u
}

func accPtr(b byte) *util.Uint160 {
	u := acc(b)
	return &u
}

func testPub(t *testing.T) keys.PublicKey {
	pub, err := keys.NewPublicKeyFromString(
		"d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a")
	require.NoError(t, err)
	return *pub
}

func testToken() NFTToken {
	return NFTToken{
		ID:        7,
		Values:    []string{"red", "large"},
		OptValues: []string{"glossy"},
		Metadata:  "ipfs://QmToken",
		Approvals: []util.Uint160{acc(0x11), acc(0x22)},
		Burnt:     false,
	}
}

// Each payload kind built twice from the same logical content must produce
// identical bytes.
func TestPayloadEncodingDeterminism(t *testing.T) {
	pub := testPub(t)
	builders := map[string]func() Payload{
		"transfer": func() Payload {
			return &Transfer{
				Source: acc(0x01),
				Target: acc(0x02),
				Token:  acc(0x03),
				Amount: token.Amount(125000000),
			}
		},
		"update vp": func() Payload {
			return &UpdateVP{Addr: acc(0x04), VPCode: []byte{0xca, 0xfe}}
		},
		"init account": func() Payload {
			return &InitAccount{PublicKey: pub, VPCode: []byte{0xba, 0xbe}}
		},
		"bond": func() Payload {
			return &Bond{Validator: acc(0x05), Amount: token.AmountFromUint64(10), Source: accPtr(0x06)}
		},
		"self bond": func() Payload {
			return &Bond{Validator: acc(0x05), Amount: token.AmountFromUint64(10)}
		},
		"unbond": func() Payload {
			return &Unbond{Validator: acc(0x07), Amount: token.AmountFromUint64(3), Source: accPtr(0x08)}
		},
		"withdraw": func() Payload {
			return &Withdraw{Validator: acc(0x09), Source: accPtr(0x0a)}
		},
		"create nft": func() Payload {
			return &CreateNFT{Owner: acc(0x0b), VPCode: []byte{0x01}, Tokens: []NFTToken{testToken()}}
		},
		"mint nft": func() Payload {
			return &MintNFT{Owner: acc(0x0c), Address: acc(0x0d), Tokens: []NFTToken{testToken()}}
		},
	}

	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			first, err := testserdes.EncodeBinary(build())
			require.NoError(t, err)
			second, err := testserdes.EncodeBinary(build())
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestPayloadRoundTrips(t *testing.T) {
	pub := testPub(t)

	testserdes.EncodeDecodeBinary(t, &Transfer{
		Source: acc(0x01),
		Target: acc(0x02),
		Token:  acc(0x03),
		Amount: token.Amount(42),
	}, new(Transfer))

	testserdes.EncodeDecodeBinary(t,
		&UpdateVP{Addr: acc(0x04), VPCode: []byte{0xca, 0xfe}}, new(UpdateVP))

	testserdes.EncodeDecodeBinary(t,
		&InitAccount{PublicKey: pub, VPCode: []byte{0xba, 0xbe}}, new(InitAccount))

	testserdes.EncodeDecodeBinary(t,
		&Bond{Validator: acc(0x05), Amount: 1, Source: accPtr(0x06)}, new(Bond))
	testserdes.EncodeDecodeBinary(t,
		&Bond{Validator: acc(0x05), Amount: 1}, new(Bond))
	testserdes.EncodeDecodeBinary(t,
		&Unbond{Validator: acc(0x07), Amount: 2, Source: accPtr(0x08)}, new(Unbond))
	testserdes.EncodeDecodeBinary(t,
		&Withdraw{Validator: acc(0x09)}, new(Withdraw))

	testserdes.EncodeDecodeBinary(t, &CreateNFT{
		Owner:  acc(0x0b),
		VPCode: []byte{0x01},
		Tokens: []NFTToken{testToken()},
	}, new(CreateNFT))
	testserdes.EncodeDecodeBinary(t, &MintNFT{
		Owner:   acc(0x0c),
		Address: acc(0x0d),
		Tokens:  []NFTToken{testToken()},
	}, new(MintNFT))
}

func TestPayloadCodeNames(t *testing.T) {
	for p, name := range map[Payload]string{
		&Transfer{}:    TransferCode,
		&UpdateVP{}:    UpdateVPCode,
		&InitAccount{}: InitAccountCode,
		&Bond{}:        BondCode,
		&Unbond{}:      UnbondCode,
		&Withdraw{}:    WithdrawCode,
		&CreateNFT{}:   CreateNFTCode,
		&MintNFT{}:     MintNFTCode,
	} {
		assert.Equal(t, name, p.CodeName())
	}
}

// Token set files are plain JSON, the same shape the asset definition files
// embed.
func TestNFTTokenJSON(t *testing.T) {
	data := []byte(`[
		{
			"id": 1,
			"values": ["red"],
			"opt_values": [],
			"metadata": "ipfs://QmOne",
			"approvals": ["1111111111111111111111111111111111111111"],
			"burnt": false
		},
		{
			"id": 2,
			"values": [],
			"opt_values": [],
			"metadata": "",
			"approvals": [],
			"burnt": true
		}
	]`)

	var tokens []NFTToken
	require.NoError(t, json.Unmarshal(data, &tokens))
	require.Equal(t, 2, len(tokens))
	assert.Equal(t, uint64(1), tokens[0].ID)
	assert.Equal(t, acc(0x11), tokens[0].Approvals[0])
	assert.True(t, tokens[1].Burnt)
}

func TestNewWithPayload(t *testing.T) {
	code := []byte{0x0c, 0x0d, 0x0e}
	p := &Transfer{Source: acc(0x01), Target: acc(0x02), Token: acc(0x03), Amount: 5}

	tx, err := New(code, p)
	require.NoError(t, err)
	require.Nil(t, tx.Signature)
	assert.Equal(t, code, tx.Code)

	expected, err := testserdes.EncodeBinary(p)
	require.NoError(t, err)
	assert.Equal(t, expected, tx.Data)
}
