package transaction

import (
	"github.com/vesna-dev/vesna-go/pkg/crypto/keys"
	"github.com/vesna-dev/vesna-go/pkg/io"
)

// InitAccount establishes a new account on the ledger guarded by the given
// validity predicate and controlled by the given public key. The address of
// the new account is reported back in the applied result.
type InitAccount struct {
	// PublicKey controls the new account.
	PublicKey keys.PublicKey `json:"public_key"`

	// VPCode is the validity predicate blob guarding the new account.
	VPCode []byte `json:"vp_code"`
}

// CodeName implements the Payload interface.
func (i *InitAccount) CodeName() string {
	return InitAccountCode
}

// EncodeBinary implements the io.Serializable interface.
func (i *InitAccount) EncodeBinary(w *io.BinWriter) {
	i.PublicKey.EncodeBinary(w)
	w.WriteVarBytes(i.VPCode)
}

// DecodeBinary implements the io.Serializable interface.
func (i *InitAccount) DecodeBinary(r *io.BinReader) {
	i.PublicKey.DecodeBinary(r)
	i.VPCode = r.ReadVarBytes(MaxCodeSize)
}
