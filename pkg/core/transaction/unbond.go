package transaction

import (
	"github.com/vesna-dev/vesna-go/pkg/core/token"
	"github.com/vesna-dev/vesna-go/pkg/io"
	"github.com/vesna-dev/vesna-go/pkg/util"
)

// Unbond starts withdrawing a bonded amount from the proof-of-stake system.
// The tokens stay locked until the unbonding period passes, after which a
// Withdraw collects them. A nil Source unbonds the validator's own tokens.
type Unbond struct {
	// Validator is the validator the tokens were delegated to.
	Validator util.Uint160 `json:"validator"`

	// Amount is the quantity to unlock.
	Amount token.Amount `json:"amount"`

	// Source is the account that bonded the tokens, nil for self-bonded
	// ones.
	Source *util.Uint160 `json:"source,omitempty"`
}

// CodeName implements the Payload interface.
func (u *Unbond) CodeName() string {
	return UnbondCode
}

// EncodeBinary implements the io.Serializable interface.
func (u *Unbond) EncodeBinary(w *io.BinWriter) {
	u.Validator.EncodeBinary(w)
	u.Amount.EncodeBinary(w)
	writeOptionalAccount(w, u.Source)
}

// DecodeBinary implements the io.Serializable interface.
func (u *Unbond) DecodeBinary(r *io.BinReader) {
	u.Validator.DecodeBinary(r)
	u.Amount.DecodeBinary(r)
	u.Source = readOptionalAccount(r)
}
