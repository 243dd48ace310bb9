package result

// Status is the node status report.
type Status struct {
	NodeInfo NodeInfo `json:"node_info"`
	SyncInfo SyncInfo `json:"sync_info"`
}

// NodeInfo identifies the node and the chain it serves.
type NodeInfo struct {
	Network string `json:"network"`
	Version string `json:"version"`
	Moniker string `json:"moniker"`
}

// SyncInfo describes how far the node has caught up with the chain.
type SyncInfo struct {
	LatestBlockHash   string `json:"latest_block_hash"`
	LatestBlockHeight string `json:"latest_block_height"`
	CatchingUp        bool   `json:"catching_up"`
}
