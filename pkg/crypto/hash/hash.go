// Package hash contains the hash primitives the ledger derives identifiers
// with. Transaction fingerprints and account hashes are all SHA-256 based.
package hash

import (
	"crypto/sha256"

	"github.com/vesna-dev/vesna-go/pkg/util"
)

// Sha256 hashes the incoming byte slice using the sha256 algorithm.
func Sha256(data []byte) util.Uint256 {
	hash := sha256.Sum256(data)
	return hash
}

// DoubleSha256 performs sha256 twice on the given data.
func DoubleSha256(data []byte) util.Uint256 {
	h1 := sha256.Sum256(data)
	return sha256.Sum256(h1[:])
}

// Checksum returns the checksum for a given piece of data using DoubleSha256
// as the hash algorithm. It's used in the base58check key export format.
func Checksum(data []byte) []byte {
	hash := DoubleSha256(data)
	return hash[:4]
}

// Account produces the 20-byte account hash of the given data, the first
// twenty bytes of its sha256 hash. Established addresses are derived from
// public keys this way.
func Account(data []byte) util.Uint160 {
	hash := sha256.Sum256(data)
	u, _ := util.Uint160DecodeBytes(hash[:util.Uint160Size])
	return u
}
