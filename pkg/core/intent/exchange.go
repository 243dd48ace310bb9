/*
Package intent provides the types gossiped between matchmaking nodes: single
token exchanges signed by their owners and the intents collecting them.

Intents never touch the ledger directly. They travel over the gossip network
until a matchmaker combines compatible exchanges into a transfer transaction,
so the types here only need a stable canonical encoding and signatures that
can be checked offline.
*/
package intent

import (
	"fmt"

	"github.com/vesna-dev/vesna-go/pkg/core/token"
	"github.com/vesna-dev/vesna-go/pkg/encoding/address"
	"github.com/vesna-dev/vesna-go/pkg/io"
	"github.com/vesna-dev/vesna-go/pkg/util"
)

// MaxVPCodeSize is the maximum length of a validity predicate blob attached
// to an exchange.
const MaxVPCodeSize = 0x400000

// Exchange describes one side of a trade: the account Addr offers up to
// MaxSell of TokenSell and wants at least MinBuy of TokenBuy, at a rate no
// worse than RateMin. VPCode optionally carries a validity predicate for the
// account created on match, nil means none.
type Exchange struct {
	Addr      util.Uint160 `json:"addr"`
	TokenSell util.Uint160 `json:"token_sell"`
	RateMin   token.Rate   `json:"rate_min"`
	MaxSell   token.Amount `json:"max_sell"`
	TokenBuy  util.Uint160 `json:"token_buy"`
	MinBuy    token.Amount `json:"min_buy"`
	VPCode    []byte       `json:"vp_code,omitempty"`
}

// EncodeBinary implements the io.Serializable interface.
func (e *Exchange) EncodeBinary(w *io.BinWriter) {
	e.Addr.EncodeBinary(w)
	e.TokenSell.EncodeBinary(w)
	e.RateMin.EncodeBinary(w)
	e.MaxSell.EncodeBinary(w)
	e.TokenBuy.EncodeBinary(w)
	e.MinBuy.EncodeBinary(w)
	w.WriteBool(e.VPCode != nil)
	if e.VPCode != nil {
		w.WriteVarBytes(e.VPCode)
	}
}

// DecodeBinary implements the io.Serializable interface.
func (e *Exchange) DecodeBinary(r *io.BinReader) {
	e.Addr.DecodeBinary(r)
	e.TokenSell.DecodeBinary(r)
	e.RateMin.DecodeBinary(r)
	e.MaxSell.DecodeBinary(r)
	e.TokenBuy.DecodeBinary(r)
	e.MinBuy.DecodeBinary(r)
	if r.ReadBool() {
		e.VPCode = r.ReadVarBytes(MaxVPCodeSize)
	} else {
		e.VPCode = nil
	}
}

// ExchangeDefinition is the JSON form an exchange is written in before it is
// signed, with accounts as bech32m strings and the validity predicate given
// as a path instead of inline code.
type ExchangeDefinition struct {
	Addr      string       `json:"addr"`
	TokenSell string       `json:"token_sell"`
	RateMin   token.Rate   `json:"rate_min"`
	MaxSell   token.Amount `json:"max_sell"`
	TokenBuy  string       `json:"token_buy"`
	MinBuy    token.Amount `json:"min_buy"`
	VPPath    string       `json:"vp_path,omitempty"`
}

// Resolve converts the definition into an Exchange, reading the validity
// predicate via load when VPPath is set.
func (d *ExchangeDefinition) Resolve(load func(path string) ([]byte, error)) (*Exchange, error) {
	addr, err := address.StringToUint160(d.Addr)
	if err != nil {
		return nil, fmt.Errorf("invalid addr: %w", err)
	}
	sell, err := address.StringToUint160(d.TokenSell)
	if err != nil {
		return nil, fmt.Errorf("invalid token_sell: %w", err)
	}
	buy, err := address.StringToUint160(d.TokenBuy)
	if err != nil {
		return nil, fmt.Errorf("invalid token_buy: %w", err)
	}
	e := &Exchange{
		Addr:      addr,
		TokenSell: sell,
		RateMin:   d.RateMin,
		MaxSell:   d.MaxSell,
		TokenBuy:  buy,
		MinBuy:    d.MinBuy,
	}
	if d.VPPath != "" {
		e.VPCode, err = load(d.VPPath)
		if err != nil {
			return nil, fmt.Errorf("can't read validity predicate for %s: %w", d.Addr, err)
		}
	}
	return e, nil
}
