package vesnarpc

import (
	"fmt"

	"github.com/vesna-dev/vesna-go/pkg/util"
)

// Query is a Tendermint-style event filter expression. Nodes match pushed
// events against it, so its exact textual form is part of the protocol.
type Query string

// NewBlockQuery matches block commit events.
func NewBlockQuery() Query {
	return "tm.event = 'NewBlock'"
}

// AndAppliedHash narrows the query to blocks having applied the transaction
// with the given hash. The applied.hash key comes from a custom event
// emitted by the ledger, with the hash in upper-case hex.
func (q Query) AndAppliedHash(h util.Uint256) Query {
	return q.AndEq("applied.hash", h.String())
}

// AndEq appends an exact-match condition on the given event attribute.
func (q Query) AndEq(key, value string) Query {
	return Query(fmt.Sprintf("%s AND %s = '%s'", q, key, value))
}

// String implements the fmt.Stringer interface.
func (q Query) String() string {
	return string(q)
}
