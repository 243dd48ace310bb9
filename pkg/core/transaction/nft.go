package transaction

import (
	"fmt"

	"github.com/vesna-dev/vesna-go/pkg/io"
	"github.com/vesna-dev/vesna-go/pkg/util"
)

// MaxNFTStringSize limits the individual string fields of an NFT token.
const MaxNFTStringSize = 0x10000

// NFTToken is a single token of a non-fungible asset. Token sets are
// described in JSON files fed to the create and mint operations.
type NFTToken struct {
	// ID is the numeric token identifier, unique within the asset.
	ID uint64 `json:"id"`

	// Values are the required attribute values of the token.
	Values []string `json:"values"`

	// OptValues are the optional attribute values of the token.
	OptValues []string `json:"opt_values"`

	// Metadata is an opaque metadata string, usually a URI.
	Metadata string `json:"metadata"`

	// Approvals are accounts allowed to operate on the token.
	Approvals []util.Uint160 `json:"approvals"`

	// Burnt marks a destroyed token.
	Burnt bool `json:"burnt"`
}

// EncodeBinary implements the io.Serializable interface.
func (n *NFTToken) EncodeBinary(w *io.BinWriter) {
	w.WriteU64LE(n.ID)
	w.WriteVarUint(uint64(len(n.Values)))
	for i := range n.Values {
		w.WriteString(n.Values[i])
	}
	w.WriteVarUint(uint64(len(n.OptValues)))
	for i := range n.OptValues {
		w.WriteString(n.OptValues[i])
	}
	w.WriteString(n.Metadata)
	w.WriteVarUint(uint64(len(n.Approvals)))
	for i := range n.Approvals {
		n.Approvals[i].EncodeBinary(w)
	}
	w.WriteBool(n.Burnt)
}

// DecodeBinary implements the io.Serializable interface.
func (n *NFTToken) DecodeBinary(r *io.BinReader) {
	n.ID = r.ReadU64LE()
	n.Values = readStrings(r)
	n.OptValues = readStrings(r)
	n.Metadata = r.ReadString(MaxNFTStringSize)
	r.ReadArray(&n.Approvals)
	n.Burnt = r.ReadBool()
}

func readStrings(r *io.BinReader) []string {
	count := r.ReadVarUint()
	if r.Err != nil {
		return nil
	}
	if count > io.MaxArraySize {
		r.Err = fmt.Errorf("string array is too big (%d)", count)
		return nil
	}
	res := make([]string, count)
	for i := range res {
		res[i] = r.ReadString(MaxNFTStringSize)
	}
	return res
}

// CreateNFT establishes a new non-fungible asset with its initial token set.
// The address of the new asset is reported back in the applied result.
type CreateNFT struct {
	// Owner is the account owning the asset.
	Owner util.Uint160 `json:"owner"`

	// VPCode is the validity predicate blob guarding the asset.
	VPCode []byte `json:"vp_code"`

	// Tokens is the initial token set.
	Tokens []NFTToken `json:"tokens"`
}

// CodeName implements the Payload interface.
func (c *CreateNFT) CodeName() string {
	return CreateNFTCode
}

// EncodeBinary implements the io.Serializable interface.
func (c *CreateNFT) EncodeBinary(w *io.BinWriter) {
	c.Owner.EncodeBinary(w)
	w.WriteVarBytes(c.VPCode)
	writeTokens(w, c.Tokens)
}

// DecodeBinary implements the io.Serializable interface.
func (c *CreateNFT) DecodeBinary(r *io.BinReader) {
	c.Owner.DecodeBinary(r)
	c.VPCode = r.ReadVarBytes(MaxCodeSize)
	r.ReadArray(&c.Tokens)
}

// MintNFT adds tokens to an existing non-fungible asset.
type MintNFT struct {
	// Owner is the account owning the asset.
	Owner util.Uint160 `json:"owner"`

	// Address is the asset the tokens are minted under.
	Address util.Uint160 `json:"address"`

	// Tokens are the tokens to mint.
	Tokens []NFTToken `json:"tokens"`
}

// CodeName implements the Payload interface.
func (m *MintNFT) CodeName() string {
	return MintNFTCode
}

// EncodeBinary implements the io.Serializable interface.
func (m *MintNFT) EncodeBinary(w *io.BinWriter) {
	m.Owner.EncodeBinary(w)
	m.Address.EncodeBinary(w)
	writeTokens(w, m.Tokens)
}

// DecodeBinary implements the io.Serializable interface.
func (m *MintNFT) DecodeBinary(r *io.BinReader) {
	m.Owner.DecodeBinary(r)
	m.Address.DecodeBinary(r)
	r.ReadArray(&m.Tokens)
}

func writeTokens(w *io.BinWriter, tokens []NFTToken) {
	w.WriteVarUint(uint64(len(tokens)))
	for i := range tokens {
		tokens[i].EncodeBinary(w)
	}
}
