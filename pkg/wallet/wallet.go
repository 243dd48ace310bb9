/*
Package wallet implements the on-disk store for signing keys and address
aliases.

The wallet is a single JSON file. It holds two kinds of entries: keys (alias
plus key material, plaintext or passphrase-encrypted) and plain address
bindings for accounts the client knows but cannot sign for, including
accounts initialized on chain by its own transactions. The store is
single-writer: nothing here locks, concurrent users must serialize access
themselves.
*/
package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/vesna-dev/vesna-go/pkg/crypto/keys"
	"github.com/vesna-dev/vesna-go/pkg/encoding/address"
	"github.com/vesna-dev/vesna-go/pkg/util"
)

// walletVersion is the version of the wallet file format.
const walletVersion = "1.0"

// Wallet represents a wallet file.
type Wallet struct {
	// Version of the wallet format.
	Version string `json:"version"`

	// Keys holds the signing keys available locally.
	Keys []*Key `json:"keys"`

	// Addresses binds aliases to addresses the wallet holds no key for.
	Addresses []*AddressEntry `json:"addresses"`

	// path to the file the wallet was opened from.
	path string
}

// Key is one named signing key. Exactly one of KIF and EncryptedKIF is
// expected to be set.
type Key struct {
	Alias        string `json:"alias"`
	Address      string `json:"address"`
	PublicKey    string `json:"public_key"`
	KIF          string `json:"kif,omitempty"`
	EncryptedKIF string `json:"encrypted_kif,omitempty"`
}

// AddressEntry binds an alias to a bech32m address.
type AddressEntry struct {
	Alias   string `json:"alias"`
	Address string `json:"address"`
}

// NewWallet creates a new empty wallet bound to the given location. Nothing
// is written until Save is called.
func NewWallet(location string) *Wallet {
	return &Wallet{
		Version:   walletVersion,
		Keys:      []*Key{},
		Addresses: []*AddressEntry{},
		path:      location,
	}
}

// NewWalletFromFile creates a Wallet from the given wallet file path.
func NewWalletFromFile(path string) (*Wallet, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	wall := new(Wallet)
	if err := json.Unmarshal(file, wall); err != nil {
		return nil, fmt.Errorf("invalid wallet file %s: %w", path, err)
	}
	wall.path = path
	return wall, nil
}

// Path returns the location of the wallet file.
func (w *Wallet) Path() string {
	return w.path
}

// AddKey derives the address and public key entries from priv and stores it
// under the given alias in plaintext KIF form. It returns false without
// modifying anything when the alias is already taken by a different address.
func (w *Wallet) AddKey(alias string, priv *keys.PrivateKey) bool {
	addr := priv.Address()
	if taken, sameAddr := w.aliasTaken(alias, addr); taken {
		return sameAddr
	}
	w.Keys = append(w.Keys, &Key{
		Alias:     alias,
		Address:   addr,
		PublicKey: priv.PublicKey().String(),
		KIF:       priv.KIF(),
	})
	return true
}

// AddEncryptedKey is AddKey for key material that is already encrypted, it
// stores the envelope as given.
func (w *Wallet) AddEncryptedKey(alias, addr, pub, encryptedKIF string) bool {
	if taken, sameAddr := w.aliasTaken(alias, addr); taken {
		return sameAddr
	}
	w.Keys = append(w.Keys, &Key{
		Alias:        alias,
		Address:      addr,
		PublicKey:    pub,
		EncryptedKIF: encryptedKIF,
	})
	return true
}

// AddAddress binds the alias to an address without key material. It returns
// false without modifying anything when the alias is already taken by a
// different address, re-adding the same binding succeeds and is a no-op.
func (w *Wallet) AddAddress(alias, addr string) bool {
	if taken, sameAddr := w.aliasTaken(alias, addr); taken {
		return sameAddr
	}
	w.Addresses = append(w.Addresses, &AddressEntry{
		Alias:   alias,
		Address: addr,
	})
	return true
}

// aliasTaken reports whether the alias is already used and if so, whether it
// points at the given address.
func (w *Wallet) aliasTaken(alias, addr string) (bool, bool) {
	for _, k := range w.Keys {
		if k.Alias == alias {
			return true, k.Address == addr
		}
	}
	for _, e := range w.Addresses {
		if e.Alias == alias {
			return true, e.Address == addr
		}
	}
	return false, false
}

// KeyByAddress returns the key entry for the given address or nil.
func (w *Wallet) KeyByAddress(addr string) *Key {
	for _, k := range w.Keys {
		if k.Address == addr {
			return k
		}
	}
	return nil
}

// KeyByPublicKey returns the key entry matching the given public key or nil.
func (w *Wallet) KeyByPublicKey(pub *keys.PublicKey) *Key {
	s := pub.String()
	for _, k := range w.Keys {
		if k.PublicKey == s {
			return k
		}
	}
	return nil
}

// AddressByAlias returns the address bound to the alias, looking through
// both keys and plain address entries.
func (w *Wallet) AddressByAlias(alias string) (string, bool) {
	for _, k := range w.Keys {
		if k.Alias == alias {
			return k.Address, true
		}
	}
	for _, e := range w.Addresses {
		if e.Alias == alias {
			return e.Address, true
		}
	}
	return "", false
}

// Resolve turns a name that is either a bech32m address or a wallet alias
// into an account hash.
func (w *Wallet) Resolve(name string) (util.Uint160, error) {
	u, err := address.StringToUint160(name)
	if err == nil {
		return u, nil
	}
	if addr, ok := w.AddressByAlias(name); ok {
		return address.StringToUint160(addr)
	}
	return util.Uint160{}, fmt.Errorf("can't resolve %q: neither an address nor a known alias", name)
}

// Save saves the wallet to its file location.
func (w *Wallet) Save() error {
	if w.path == "" {
		return errors.New("wallet has no path")
	}
	data, err := json.MarshalIndent(w, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(w.path, data, 0644)
}

// JSON outputs a pretty JSON representation of the wallet.
func (w *Wallet) JSON() ([]byte, error) {
	return json.MarshalIndent(w, "", "\t")
}

// PrivateKey decodes the plaintext key material of the entry. It fails on
// encrypted entries, use Decrypt for those.
func (k *Key) PrivateKey() (*keys.PrivateKey, error) {
	if k.KIF == "" {
		return nil, fmt.Errorf("key %s is encrypted", k.Alias)
	}
	return keys.NewPrivateKeyFromKIF(k.KIF)
}

// Decrypt decodes the encrypted key material of the entry with the given
// passphrase.
func (k *Key) Decrypt(passphrase string, params keys.ScryptParams) (*keys.PrivateKey, error) {
	if k.EncryptedKIF == "" {
		return k.PrivateKey()
	}
	return keys.Decrypt(k.EncryptedKIF, passphrase, params)
}
