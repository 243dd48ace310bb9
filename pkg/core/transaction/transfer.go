package transaction

import (
	"github.com/vesna-dev/vesna-go/pkg/core/token"
	"github.com/vesna-dev/vesna-go/pkg/io"
	"github.com/vesna-dev/vesna-go/pkg/util"
)

// Transfer moves an amount of fungible tokens between two established
// accounts.
type Transfer struct {
	// Source is the account the tokens are drawn from.
	Source util.Uint160 `json:"source"`

	// Target is the account the tokens are credited to.
	Target util.Uint160 `json:"target"`

	// Token is the account of the token being moved.
	Token util.Uint160 `json:"token"`

	// Amount is the quantity to move.
	Amount token.Amount `json:"amount"`
}

// CodeName implements the Payload interface.
func (t *Transfer) CodeName() string {
	return TransferCode
}

// EncodeBinary implements the io.Serializable interface.
func (t *Transfer) EncodeBinary(w *io.BinWriter) {
	t.Source.EncodeBinary(w)
	t.Target.EncodeBinary(w)
	t.Token.EncodeBinary(w)
	t.Amount.EncodeBinary(w)
}

// DecodeBinary implements the io.Serializable interface.
func (t *Transfer) DecodeBinary(r *io.BinReader) {
	t.Source.DecodeBinary(r)
	t.Target.DecodeBinary(r)
	t.Token.DecodeBinary(r)
	t.Amount.DecodeBinary(r)
}
