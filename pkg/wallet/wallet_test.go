package wallet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vesna-dev/vesna-go/pkg/crypto/keys"
	"github.com/vesna-dev/vesna-go/pkg/encoding/address"
	"github.com/vesna-dev/vesna-go/pkg/util"
)

func testKey(t *testing.T) *keys.PrivateKey {
	priv, err := keys.NewPrivateKeyFromHex("9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	require.NoError(t, err)
	return priv
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.json")
	w := NewWallet(path)
	require.Equal(t, path, w.Path())

	priv := testKey(t)
	require.True(t, w.AddKey("validator", priv))
	require.True(t, w.AddAddress("faucet", "vsn1y8lrrhap2j3xzcntlp2qgm7jyudhhm2ttz6ynv"))
	require.NoError(t, w.Save())

	loaded, err := NewWalletFromFile(path)
	require.NoError(t, err)
	require.Equal(t, walletVersion, loaded.Version)
	require.Equal(t, w.Keys, loaded.Keys)
	require.Equal(t, w.Addresses, loaded.Addresses)

	expected, err := w.JSON()
	require.NoError(t, err)
	actual, err := loaded.JSON()
	require.NoError(t, err)
	require.Equal(t, expected, actual)
}

func TestLoadErrors(t *testing.T) {
	_, err := NewWalletFromFile(filepath.Join(t.TempDir(), "nonexistent.json"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{truncated"), 0644))
	_, err = NewWalletFromFile(path)
	require.Error(t, err)

	require.Error(t, NewWallet("").Save())
}

func TestAliasCollisions(t *testing.T) {
	w := NewWallet("")
	priv := testKey(t)

	require.True(t, w.AddKey("mykey", priv))
	require.True(t, w.AddAddress("target", "vsn188m3859xgsjn7pzjjssmnagmnvyf08ggsu40rp"))

	t.Run("same binding is accepted", func(t *testing.T) {
		require.True(t, w.AddAddress("target", "vsn188m3859xgsjn7pzjjssmnagmnvyf08ggsu40rp"))
		require.Len(t, w.Addresses, 1)
		require.True(t, w.AddKey("mykey", priv))
		require.Len(t, w.Keys, 1)
	})
	t.Run("different address is rejected", func(t *testing.T) {
		require.False(t, w.AddAddress("target", "vsn1y8lrrhap2j3xzcntlp2qgm7jyudhhm2ttz6ynv"))
		require.Len(t, w.Addresses, 1)
	})
	t.Run("key aliases count", func(t *testing.T) {
		require.False(t, w.AddAddress("mykey", "vsn1y8lrrhap2j3xzcntlp2qgm7jyudhhm2ttz6ynv"))
		require.False(t, w.AddKey("target", priv))
	})
}

func TestLookups(t *testing.T) {
	w := NewWallet("")
	priv := testKey(t)
	require.True(t, w.AddKey("signer", priv))
	require.True(t, w.AddAddress("peer", "vsn188m3859xgsjn7pzjjssmnagmnvyf08ggsu40rp"))

	k := w.KeyByAddress(priv.Address())
	require.NotNil(t, k)
	require.Equal(t, "signer", k.Alias)
	require.Nil(t, w.KeyByAddress("vsn188m3859xgsjn7pzjjssmnagmnvyf08ggsu40rp"))

	require.NotNil(t, w.KeyByPublicKey(priv.PublicKey()))
	other, err := keys.NewPrivateKey()
	require.NoError(t, err)
	require.Nil(t, w.KeyByPublicKey(other.PublicKey()))

	addr, ok := w.AddressByAlias("signer")
	require.True(t, ok)
	require.Equal(t, priv.Address(), addr)
	addr, ok = w.AddressByAlias("peer")
	require.True(t, ok)
	require.Equal(t, "vsn188m3859xgsjn7pzjjssmnagmnvyf08ggsu40rp", addr)
	_, ok = w.AddressByAlias("nobody")
	require.False(t, ok)
}

func TestResolve(t *testing.T) {
	w := NewWallet("")
	priv := testKey(t)
	require.True(t, w.AddKey("signer", priv))

	direct, err := w.Resolve(priv.Address())
	require.NoError(t, err)
	require.Equal(t, priv.GetAccountHash(), direct)

	byAlias, err := w.Resolve("signer")
	require.NoError(t, err)
	require.Equal(t, direct, byAlias)

	_, err = w.Resolve("nobody")
	require.Error(t, err)

	w.Addresses = append(w.Addresses, &AddressEntry{Alias: "broken", Address: "garbage"})
	_, err = w.Resolve("broken")
	require.Error(t, err)

	var zero util.Uint160
	u, err := w.Resolve(address.Uint160ToString(zero))
	require.NoError(t, err)
	require.Equal(t, zero, u)
}

func TestKeyMaterial(t *testing.T) {
	priv := testKey(t)
	params := keys.ScryptParams{N: 256, R: 1, P: 1}

	t.Run("plaintext", func(t *testing.T) {
		w := NewWallet("")
		require.True(t, w.AddKey("k", priv))
		got, err := w.Keys[0].PrivateKey()
		require.NoError(t, err)
		require.Equal(t, priv.Bytes(), got.Bytes())

		// Decrypt falls back to the plaintext material.
		got, err = w.Keys[0].Decrypt("ignored", params)
		require.NoError(t, err)
		require.Equal(t, priv.Bytes(), got.Bytes())
	})
	t.Run("encrypted", func(t *testing.T) {
		envelope, err := keys.Encrypt(priv, "passw0rd", params)
		require.NoError(t, err)
		w := NewWallet("")
		require.True(t, w.AddEncryptedKey("k", priv.Address(), priv.PublicKey().String(), envelope))

		_, err = w.Keys[0].PrivateKey()
		require.Error(t, err)

		got, err := w.Keys[0].Decrypt("passw0rd", params)
		require.NoError(t, err)
		require.Equal(t, priv.Bytes(), got.Bytes())

		_, err = w.Keys[0].Decrypt("wrong", params)
		require.Error(t, err)
	})
}
