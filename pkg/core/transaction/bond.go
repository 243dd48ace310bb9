package transaction

import (
	"github.com/vesna-dev/vesna-go/pkg/core/token"
	"github.com/vesna-dev/vesna-go/pkg/io"
	"github.com/vesna-dev/vesna-go/pkg/util"
)

// Bond locks an amount of tokens into the proof-of-stake system in favor of
// a validator. A nil Source bonds the validator's own tokens.
type Bond struct {
	// Validator is the validator the tokens are delegated to.
	Validator util.Uint160 `json:"validator"`

	// Amount is the quantity to lock.
	Amount token.Amount `json:"amount"`

	// Source is the account the tokens come from, nil for self-bonding.
	Source *util.Uint160 `json:"source,omitempty"`
}

// CodeName implements the Payload interface.
func (b *Bond) CodeName() string {
	return BondCode
}

// EncodeBinary implements the io.Serializable interface.
func (b *Bond) EncodeBinary(w *io.BinWriter) {
	b.Validator.EncodeBinary(w)
	b.Amount.EncodeBinary(w)
	writeOptionalAccount(w, b.Source)
}

// DecodeBinary implements the io.Serializable interface.
func (b *Bond) DecodeBinary(r *io.BinReader) {
	b.Validator.DecodeBinary(r)
	b.Amount.DecodeBinary(r)
	b.Source = readOptionalAccount(r)
}

func writeOptionalAccount(w *io.BinWriter, u *util.Uint160) {
	w.WriteBool(u != nil)
	if u != nil {
		u.EncodeBinary(w)
	}
}

func readOptionalAccount(r *io.BinReader) *util.Uint160 {
	if !r.ReadBool() {
		return nil
	}
	var u util.Uint160
	u.DecodeBinary(r)
	if r.Err != nil {
		return nil
	}
	return &u
}
