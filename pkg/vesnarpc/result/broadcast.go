package result

import (
	"github.com/vesna-dev/vesna-go/pkg/util"
)

// BroadcastResult is the mempool admission ack returned by
// broadcast_tx_sync. A non-zero Code means the node rejected the
// transaction without executing it, with Log carrying the diagnostic.
type BroadcastResult struct {
	Code uint32       `json:"code"`
	Data string       `json:"data"`
	Log  string       `json:"log"`
	Hash util.Uint256 `json:"hash"`
}
