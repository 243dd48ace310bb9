package rpcclient

import (
	"encoding/hex"
	"fmt"

	"github.com/vesna-dev/vesna-go/pkg/crypto/keys"
	"github.com/vesna-dev/vesna-go/pkg/encoding/address"
	"github.com/vesna-dev/vesna-go/pkg/util"
	"github.com/vesna-dev/vesna-go/pkg/vesnarpc"
	"github.com/vesna-dev/vesna-go/pkg/vesnarpc/result"
)

// dryRunPath is the query path executing a transaction against the current
// state without committing anything.
const dryRunPath = "dry_run_tx"

// ABCIQuery performs a read-only query against the application state. The
// path selects the query handler, data carries its input.
func (c *Client) ABCIQuery(path string, data []byte) (*result.ABCIQueryResponse, error) {
	resp := new(result.ABCIQueryResult)
	err := c.performRequest(vesnarpc.MethodABCIQuery, map[string]any{
		"path":   path,
		"data":   hex.EncodeToString(data),
		"height": "0",
		"prove":  false,
	}, resp)
	if err != nil {
		return nil, err
	}
	return &resp.Response, nil
}

// DryRunTx executes the given transaction bytes without committing any state
// changes and returns the application's response.
func (c *Client) DryRunTx(tx []byte) (*result.ABCIQueryResponse, error) {
	resp, err := c.ABCIQuery(dryRunPath, tx)
	if err != nil {
		return nil, err
	}
	if resp.Code != 0 {
		return nil, fmt.Errorf("dry run failed: %s", resp.Log)
	}
	return resp, nil
}

// QueryPublicKey fetches the public key of the given account from the ledger
// state. A missing key is an error, established accounts without one cannot
// sign anything.
func (c *Client) QueryPublicKey(acc util.Uint160) (*keys.PublicKey, error) {
	addr := address.Uint160ToString(acc)
	resp, err := c.ABCIQuery("key/"+addr, nil)
	if err != nil {
		return nil, err
	}
	if resp.Code != 0 {
		return nil, fmt.Errorf("can't query public key for %s: %s", addr, resp.Log)
	}
	if len(resp.Value) == 0 {
		return nil, fmt.Errorf("no public key found for %s", addr)
	}
	return keys.NewPublicKeyFromBytes(resp.Value)
}

// BroadcastTxSync submits a signed transaction in its wire form and waits
// for the mempool admission ack. A non-zero code in the result means the
// node rejected the transaction, the returned error stays nil in that case
// as the call itself succeeded. The bytes travel base64-encoded.
func (c *Client) BroadcastTxSync(tx []byte) (*result.BroadcastResult, error) {
	resp := new(result.BroadcastResult)
	if err := c.performRequest(vesnarpc.MethodBroadcastTxSync, map[string]any{"tx": tx}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Status returns the node status report.
func (c *Client) Status() (*result.Status, error) {
	resp := new(result.Status)
	if err := c.performRequest(vesnarpc.MethodStatus, nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
