package client

import (
	"fmt"

	"github.com/vesna-dev/vesna-go/pkg/crypto/keys"
	"github.com/vesna-dev/vesna-go/pkg/encoding/address"
	"github.com/vesna-dev/vesna-go/pkg/util"
	"github.com/vesna-dev/vesna-go/pkg/wallet"
)

// PublicKeyQuerier fetches the public key of an established account from a
// ledger node. rpcclient.Client implements it.
type PublicKeyQuerier interface {
	QueryPublicKey(acc util.Uint160) (*keys.PublicKey, error)
}

// FindKey locates the signing key for the given account in the wallet. The
// wallet is searched by address first; failing that, the account's public
// key is fetched from the node and the wallet is searched by it, covering
// keys imported under a different address derivation. A key that can't be
// found or decoded makes the whole submission fail, there is nothing to
// retry.
func FindKey(w *wallet.Wallet, acc util.Uint160, q PublicKeyQuerier) (*keys.PrivateKey, error) {
	addr := address.Uint160ToString(acc)
	if k := w.KeyByAddress(addr); k != nil {
		return k.PrivateKey()
	}
	if q == nil {
		return nil, fmt.Errorf("no key for %s in the wallet", addr)
	}
	pub, err := q.QueryPublicKey(acc)
	if err != nil {
		return nil, fmt.Errorf("no key for %s in the wallet and the ledger query failed: %w", addr, err)
	}
	if k := w.KeyByPublicKey(pub); k != nil {
		return k.PrivateKey()
	}
	return nil, fmt.Errorf("no key for %s in the wallet", addr)
}
