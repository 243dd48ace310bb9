package client

import (
	"fmt"
	"strconv"

	"github.com/vesna-dev/vesna-go/pkg/encoding/address"
	"github.com/vesna-dev/vesna-go/pkg/util"
	"github.com/vesna-dev/vesna-go/pkg/wallet"
	"go.uber.org/zap"
)

// AliasResolver picks an alias for a newly initialized account. The
// interactive CLI implementation asks the user, tests and headless setups
// plug in their own. Returning an empty alias is valid and makes the
// account's own address the alias.
type AliasResolver interface {
	ReadAlias(addr string) (string, error)
}

// AutoAliasResolver is the headless AliasResolver: it never proposes
// anything, so every account ends up aliased by its own address string,
// which cannot collide.
type AutoAliasResolver struct{}

// ReadAlias implements the AliasResolver interface.
func (AutoAliasResolver) ReadAlias(_ string) (string, error) {
	return "", nil
}

// SaveInitializedAccounts records the accounts a confirmed transaction
// created into the wallet. With a non-empty hint the alias is the hint
// itself for a single account and hint0, hint1 and so on for several;
// without one the resolver is asked per account. A proposal the wallet
// refuses (alias taken by another address) is handed over to the resolver
// until one is accepted, an empty alias falls back to the account's own
// address. The wallet is persisted exactly once at the end; by that point
// the transaction is final on chain, so a failed save is only logged and
// the error returned, there is nothing to roll back.
//
// An empty account list changes and persists nothing.
func SaveInitializedAccounts(w *wallet.Wallet, accounts []util.Uint160, hint string, resolver AliasResolver, log *zap.Logger) error {
	if len(accounts) == 0 {
		return nil
	}
	for i, acc := range accounts {
		addr := address.Uint160ToString(acc)
		alias := hint
		if hint != "" && len(accounts) > 1 {
			alias = hint + strconv.Itoa(i)
		}
		for {
			if alias == "" {
				var err error
				alias, err = resolver.ReadAlias(addr)
				if err != nil {
					return fmt.Errorf("can't read an alias for %s: %w", addr, err)
				}
				if alias == "" {
					alias = addr
				}
			}
			if w.AddAddress(alias, addr) {
				log.Info("added account to the wallet",
					zap.String("alias", alias),
					zap.String("address", addr))
				break
			}
			log.Warn("alias is already taken by another address",
				zap.String("alias", alias))
			// A hinted alias that collided can't be fixed by trying it
			// again, so collisions always fall through to the resolver.
			alias = ""
		}
	}
	if err := w.Save(); err != nil {
		return fmt.Errorf("can't persist the wallet: %w", err)
	}
	return nil
}
