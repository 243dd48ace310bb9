// Package transaction defines the wire transaction of the ledger together
// with the typed payloads the client can build into one.
package transaction

import (
	"errors"

	"github.com/vesna-dev/vesna-go/pkg/crypto/hash"
	"github.com/vesna-dev/vesna-go/pkg/crypto/keys"
	"github.com/vesna-dev/vesna-go/pkg/io"
	"github.com/vesna-dev/vesna-go/pkg/util"
)

const (
	// MaxCodeSize is the maximum size of a transaction code blob.
	MaxCodeSize = 0x400000

	// MaxDataSize is the maximum size of a transaction data payload.
	MaxDataSize = 0x400000
)

// Transaction is the unit the ledger accepts: a code blob interpreting an
// optional data payload, optionally signed. A transaction carries either no
// signature or exactly one.
type Transaction struct {
	// Code is the transaction code executed by the ledger.
	Code []byte

	// Data is the payload the code interprets. nil means the payload is
	// absent, which differs from an empty one.
	Data []byte

	// Signature covers the canonical unsigned encoding, nil while the
	// transaction is unsigned.
	Signature *keys.Signature

	hash   util.Uint256
	hashed bool
}

// New returns an unsigned transaction carrying the given code blob and the
// canonical encoding of the given payload.
func New(code []byte, p Payload) (*Transaction, error) {
	data, err := io.ToByteArray(p)
	if err != nil {
		return nil, err
	}
	return &Transaction{Code: code, Data: data}, nil
}

// NewRaw returns an unsigned transaction built from a raw code blob and raw
// payload bytes. It backs arbitrary submissions that don't use a typed
// payload.
func NewRaw(code []byte, data []byte) *Transaction {
	return &Transaction{Code: code, Data: data}
}

// NewTransactionFromBytes decodes a transaction from the given wire bytes.
func NewTransactionFromBytes(b []byte) (*Transaction, error) {
	tx := &Transaction{}
	r := io.NewBinReaderFromBuf(b)
	tx.DecodeBinary(r)
	if r.Err != nil {
		return nil, r.Err
	}
	_ = r.ReadB()
	if r.Err == nil {
		return nil, errors.New("additional data after the transaction")
	}
	tx.hash = hash.Sha256(b)
	tx.hashed = true
	return tx, nil
}

// writeUnsigned emits the part of the encoding signatures cover.
func (t *Transaction) writeUnsigned(w *io.BinWriter) {
	w.WriteVarBytes(t.Code)
	w.WriteBool(t.Data != nil)
	if t.Data != nil {
		w.WriteVarBytes(t.Data)
	}
}

// EncodeBinary implements the io.Serializable interface.
func (t *Transaction) EncodeBinary(w *io.BinWriter) {
	t.writeUnsigned(w)
	w.WriteBool(t.Signature != nil)
	if t.Signature != nil {
		t.Signature.EncodeBinary(w)
	}
}

// DecodeBinary implements the io.Serializable interface.
func (t *Transaction) DecodeBinary(r *io.BinReader) {
	t.Code = r.ReadVarBytes(MaxCodeSize)
	t.Data = nil
	if r.ReadBool() {
		t.Data = r.ReadVarBytes(MaxDataSize)
	}
	t.Signature = nil
	if r.ReadBool() {
		var sig keys.Signature
		sig.DecodeBinary(r)
		if r.Err == nil {
			t.Signature = &sig
		}
	}
}

// SigningBytes returns the canonical unsigned encoding of the transaction,
// the bytes signatures cover. It's the same for a signed and an unsigned
// transaction with equal code and data.
func (t *Transaction) SigningBytes() []byte {
	buf := io.NewBufBinWriter()
	t.writeUnsigned(buf.BinWriter)
	if buf.Err != nil {
		return nil
	}
	return buf.Bytes()
}

// Sign returns a copy of the transaction signed with the given key. Any
// previous signature is replaced, so the result always carries exactly one.
func (t *Transaction) Sign(priv *keys.PrivateKey) *Transaction {
	sig := priv.Sign(t.SigningBytes())
	return &Transaction{
		Code:      t.Code,
		Data:      t.Data,
		Signature: &sig,
	}
}

// VerifySignature checks whether the transaction signature is a valid
// signature of its canonical unsigned encoding by the given key.
func (t *Transaction) VerifySignature(pub *keys.PublicKey) bool {
	if t.Signature == nil {
		return false
	}
	return pub.Verify(t.SigningBytes(), *t.Signature)
}

// Bytes converts the transaction to its wire bytes.
func (t *Transaction) Bytes() []byte {
	buf := io.NewBufBinWriter()
	t.EncodeBinary(buf.BinWriter)
	if buf.Err != nil {
		return nil
	}
	return buf.Bytes()
}

// Hash returns the fingerprint of the transaction, the sha256 hash of the
// exact bytes it's broadcast in. The value is cached after the first call,
// so the transaction must not be modified afterwards.
func (t *Transaction) Hash() util.Uint256 {
	if !t.hashed {
		t.hash = hash.Sha256(t.Bytes())
		t.hashed = true
	}
	return t.hash
}
