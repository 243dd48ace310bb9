package transaction

import "github.com/vesna-dev/vesna-go/pkg/io"

// Payload is implemented by every typed operation the client can build into
// a transaction. Payload encoding is canonical: equal values always produce
// identical bytes.
type Payload interface {
	io.Serializable

	// CodeName returns the name of the transaction code blob that
	// interprets the payload on the ledger side.
	CodeName() string
}

// Names of the transaction code blobs, relative to the code directory.
const (
	TransferCode    = "tx_transfer.wasm"
	UpdateVPCode    = "tx_update_vp.wasm"
	InitAccountCode = "tx_init_account.wasm"
	CreateNFTCode   = "tx_create_nft.wasm"
	MintNFTCode     = "tx_mint_nft_tokens.wasm"
	BondCode        = "tx_bond.wasm"
	UnbondCode      = "tx_unbond.wasm"
	WithdrawCode    = "tx_withdraw.wasm"
)

// Names of the default validity predicate blobs used when an operation
// doesn't bring its own.
const (
	UserVPCode = "vp_user.wasm"
	NFTVPCode  = "vp_nft.wasm"
)
