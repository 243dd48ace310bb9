/*
Package vesnarpc contains a set of types used for JSON-RPC communication
with Vesna ledger nodes. It defines basic request/response types as well as
the error object and the event query expressions used for subscriptions.
*/
package vesnarpc

import (
	"encoding/json"
)

// JSONRPCVersion is the only JSON-RPC protocol version supported.
const JSONRPCVersion = "2.0"

// Method names accepted by ledger nodes.
const (
	// MethodSubscribe registers an event query on the connection, events
	// matching it are then pushed to the caller.
	MethodSubscribe = "subscribe"
	// MethodUnsubscribe removes a previously registered event query.
	MethodUnsubscribe = "unsubscribe"
	// MethodBroadcastTxSync submits a transaction and waits for the mempool
	// admission check (but not for execution).
	MethodBroadcastTxSync = "broadcast_tx_sync"
	// MethodABCIQuery performs a read-only query against the application.
	MethodABCIQuery = "abci_query"
	// MethodStatus reports node status.
	MethodStatus = "status"
)

type (
	// Request represents a JSON-RPC request sent to a ledger node. Params
	// are named, which is what the Tendermint-derived RPC endpoint expects.
	Request struct {
		// JSONRPC is the protocol version, only valid when it contains
		// JSONRPCVersion.
		JSONRPC string `json:"jsonrpc"`
		// Method is the method being called.
		Method string `json:"method"`
		// Params is a set of method-specific named parameters.
		Params map[string]any `json:"params,omitempty"`
		// ID is an identifier associated with this request. The client uses
		// numeric identifiers, the node echoes them back and also reuses the
		// subscribe request's ID on every event pushed for its query.
		ID uint64 `json:"id"`
	}

	// Header is a generic JSON-RPC 2.0 response header (ID and JSON-RPC
	// version).
	Header struct {
		ID      json.RawMessage `json:"id"`
		JSONRPC string          `json:"jsonrpc"`
	}

	// Response represents a standard raw JSON-RPC 2.0 response. Events
	// pushed for a subscription arrive in the same shape, carrying the
	// subscribe request's ID and the event payload in Result.
	Response struct {
		Header
		Error  *Error          `json:"error,omitempty"`
		Result json.RawMessage `json:"result,omitempty"`
	}
)

// NewRequest creates a request with the protocol version filled in.
func NewRequest(id uint64, method string, params map[string]any) *Request {
	return &Request{
		JSONRPC: JSONRPCVersion,
		Method:  method,
		Params:  params,
		ID:      id,
	}
}
