package result

import (
	"encoding/json"
)

// Event is one subscription event pushed by a ledger node. Events holds the
// flattened attributes keyed by dotted names, each value an array since keys
// can repeat within a block.
type Event struct {
	Query  string              `json:"query"`
	Data   json.RawMessage     `json:"data"`
	Events map[string][]string `json:"events"`
}
