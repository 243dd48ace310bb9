package transaction

import (
	"github.com/vesna-dev/vesna-go/pkg/io"
	"github.com/vesna-dev/vesna-go/pkg/util"
)

// Withdraw collects tokens whose unbonding period has passed back into the
// source account. A nil Source withdraws the validator's own tokens.
type Withdraw struct {
	// Validator is the validator the tokens were delegated to.
	Validator util.Uint160 `json:"validator"`

	// Source is the account that bonded the tokens, nil for self-bonded
	// ones.
	Source *util.Uint160 `json:"source,omitempty"`
}

// CodeName implements the Payload interface.
func (wd *Withdraw) CodeName() string {
	return WithdrawCode
}

// EncodeBinary implements the io.Serializable interface.
func (wd *Withdraw) EncodeBinary(w *io.BinWriter) {
	wd.Validator.EncodeBinary(w)
	writeOptionalAccount(w, wd.Source)
}

// DecodeBinary implements the io.Serializable interface.
func (wd *Withdraw) DecodeBinary(r *io.BinReader) {
	wd.Validator.DecodeBinary(r)
	wd.Source = readOptionalAccount(r)
}
