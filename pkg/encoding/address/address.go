// Package address implements conversion between 20-byte account hashes and
// their canonical bech32m string form.
package address

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/vesna-dev/vesna-go/pkg/util"
)

// Prefix is the human-readable part of every account address.
const Prefix = "vsn"

// Uint160ToString returns the address string of the given account hash.
func Uint160ToString(u util.Uint160) string {
	conv, err := bech32.ConvertBits(u.Bytes(), 8, 5, true)
	if err != nil {
		// Padded 8-to-5 bit regrouping can't fail on valid input sizes.
		panic(err)
	}
	s, err := bech32.EncodeM(Prefix, conv)
	if err != nil {
		panic(err)
	}
	return s
}

// StringToUint160 attempts to decode the given address string into an
// account hash.
func StringToUint160(s string) (u util.Uint160, err error) {
	hrp, data, version, err := bech32.DecodeGeneric(s)
	if err != nil {
		return u, err
	}
	if hrp != Prefix {
		return u, fmt.Errorf("wrong address prefix %q", hrp)
	}
	if version != bech32.VersionM {
		return u, errors.New("wrong address checksum variant")
	}
	conv, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return u, err
	}
	return util.Uint160DecodeBytes(conv)
}
