package intent

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/vesna-dev/vesna-go/pkg/io"
)

// FungibleTokenIntent is a set of signed exchanges gossiped as one unit. The
// set is unordered, two intents holding the same exchanges encode to the
// same bytes whatever order they were added in.
type FungibleTokenIntent struct {
	Exchanges []*Signed[*Exchange]
}

// NewFungibleTokenIntent creates an intent from the given signed exchanges.
func NewFungibleTokenIntent(exchanges ...*Signed[*Exchange]) *FungibleTokenIntent {
	return &FungibleTokenIntent{Exchanges: exchanges}
}

// EncodeBinary implements the io.Serializable interface. Elements are
// written sorted by their canonical encoding with duplicates collapsed,
// which is what makes the encoding insertion-order independent.
func (i *FungibleTokenIntent) EncodeBinary(w *io.BinWriter) {
	encoded := make([][]byte, 0, len(i.Exchanges))
	for _, e := range i.Exchanges {
		b, err := io.ToByteArray(e)
		if err != nil {
			w.Err = err
			return
		}
		encoded = append(encoded, b)
	}
	sort.Slice(encoded, func(a, b int) bool {
		return bytes.Compare(encoded[a], encoded[b]) < 0
	})
	n := 0
	for j, b := range encoded {
		if j > 0 && bytes.Equal(encoded[j-1], b) {
			continue
		}
		encoded[n] = b
		n++
	}
	encoded = encoded[:n]
	w.WriteVarUint(uint64(len(encoded)))
	for _, b := range encoded {
		w.WriteBytes(b)
	}
}

// DecodeBinary implements the io.Serializable interface.
func (i *FungibleTokenIntent) DecodeBinary(r *io.BinReader) {
	count := r.ReadVarUint()
	if count > io.MaxArraySize {
		r.Err = fmt.Errorf("exchange array is too big (%d)", count)
		return
	}
	if r.Err != nil {
		return
	}
	exchanges := make([]*Signed[*Exchange], count)
	for j := range exchanges {
		exchanges[j] = &Signed[*Exchange]{Data: new(Exchange)}
		exchanges[j].DecodeBinary(r)
		if r.Err != nil {
			return
		}
	}
	i.Exchanges = exchanges
}
