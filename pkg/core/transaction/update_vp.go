package transaction

import (
	"github.com/vesna-dev/vesna-go/pkg/io"
	"github.com/vesna-dev/vesna-go/pkg/util"
)

// UpdateVP replaces the validity predicate of an established account.
type UpdateVP struct {
	// Addr is the account being updated.
	Addr util.Uint160 `json:"addr"`

	// VPCode is the new validity predicate blob.
	VPCode []byte `json:"vp_code"`
}

// CodeName implements the Payload interface.
func (u *UpdateVP) CodeName() string {
	return UpdateVPCode
}

// EncodeBinary implements the io.Serializable interface.
func (u *UpdateVP) EncodeBinary(w *io.BinWriter) {
	u.Addr.EncodeBinary(w)
	w.WriteVarBytes(u.VPCode)
}

// DecodeBinary implements the io.Serializable interface.
func (u *UpdateVP) DecodeBinary(r *io.BinReader) {
	u.Addr.DecodeBinary(r)
	u.VPCode = r.ReadVarBytes(MaxCodeSize)
}
