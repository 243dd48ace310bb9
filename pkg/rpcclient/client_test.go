package rpcclient

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vesna-dev/vesna-go/pkg/crypto/keys"
	"github.com/vesna-dev/vesna-go/pkg/encoding/address"
	"github.com/vesna-dev/vesna-go/pkg/vesnarpc"
)

// initTestServer starts an HTTP node stub answering every request with the
// handler's result (or error) and returns a Client bound to it.
func initTestServer(t *testing.T, handler func(r *vesnarpc.Request) (any, *vesnarpc.Error)) *Client {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		in := new(vesnarpc.Request)
		require.NoError(t, json.NewDecoder(req.Body).Decode(in))
		require.Equal(t, vesnarpc.JSONRPCVersion, in.JSONRPC)

		out := vesnarpc.Response{}
		out.JSONRPC = vesnarpc.JSONRPCVersion
		out.ID, _ = json.Marshal(in.ID)
		res, rpcErr := handler(in)
		if rpcErr != nil {
			out.Error = rpcErr
		} else {
			raw, err := json.Marshal(res)
			require.NoError(t, err)
			out.Result = raw
		}
		require.NoError(t, json.NewEncoder(w).Encode(out))
	}))
	t.Cleanup(srv.Close)

	c, err := New(context.Background(), srv.URL, Options{})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestClientABCIQuery(t *testing.T) {
	c := initTestServer(t, func(r *vesnarpc.Request) (any, *vesnarpc.Error) {
		require.Equal(t, vesnarpc.MethodABCIQuery, r.Method)
		require.Equal(t, "store/value", r.Params["path"])
		require.Equal(t, hex.EncodeToString([]byte("input")), r.Params["data"])
		return map[string]any{"response": map[string]any{
			"code":  0,
			"value": base64.StdEncoding.EncodeToString([]byte("output")),
		}}, nil
	})

	resp, err := c.ABCIQuery("store/value", []byte("input"))
	require.NoError(t, err)
	require.EqualValues(t, 0, resp.Code)
	require.Equal(t, []byte("output"), resp.Value)
}

func TestClientDryRunTx(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		c := initTestServer(t, func(r *vesnarpc.Request) (any, *vesnarpc.Error) {
			require.Equal(t, dryRunPath, r.Params["path"])
			return map[string]any{"response": map[string]any{"code": 0, "info": "gas 100"}}, nil
		})
		resp, err := c.DryRunTx([]byte{0x01, 0x02})
		require.NoError(t, err)
		require.Equal(t, "gas 100", resp.Info)
	})
	t.Run("rejected", func(t *testing.T) {
		c := initTestServer(t, func(r *vesnarpc.Request) (any, *vesnarpc.Error) {
			return map[string]any{"response": map[string]any{"code": 3, "log": "invalid signature"}}, nil
		})
		_, err := c.DryRunTx([]byte{0x01, 0x02})
		require.ErrorContains(t, err, "invalid signature")
	})
}

func TestClientQueryPublicKey(t *testing.T) {
	priv, err := keys.NewPrivateKeyFromHex("9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	require.NoError(t, err)
	acc := priv.GetAccountHash()

	t.Run("found", func(t *testing.T) {
		c := initTestServer(t, func(r *vesnarpc.Request) (any, *vesnarpc.Error) {
			require.Equal(t, "key/"+address.Uint160ToString(acc), r.Params["path"])
			return map[string]any{"response": map[string]any{
				"code":  0,
				"value": base64.StdEncoding.EncodeToString(priv.PublicKey().Bytes()),
			}}, nil
		})
		pub, err := c.QueryPublicKey(acc)
		require.NoError(t, err)
		require.True(t, priv.PublicKey().Equal(pub))
	})
	t.Run("no key", func(t *testing.T) {
		c := initTestServer(t, func(r *vesnarpc.Request) (any, *vesnarpc.Error) {
			return map[string]any{"response": map[string]any{"code": 0}}, nil
		})
		_, err := c.QueryPublicKey(acc)
		require.ErrorContains(t, err, "no public key")
	})
	t.Run("query failure", func(t *testing.T) {
		c := initTestServer(t, func(r *vesnarpc.Request) (any, *vesnarpc.Error) {
			return map[string]any{"response": map[string]any{"code": 1, "log": "unknown account"}}, nil
		})
		_, err := c.QueryPublicKey(acc)
		require.ErrorContains(t, err, "unknown account")
	})
}

func TestClientBroadcastTxSync(t *testing.T) {
	tx := []byte{0xde, 0xad, 0xbe, 0xef}
	c := initTestServer(t, func(r *vesnarpc.Request) (any, *vesnarpc.Error) {
		require.Equal(t, vesnarpc.MethodBroadcastTxSync, r.Method)
		require.Equal(t, base64.StdEncoding.EncodeToString(tx), r.Params["tx"])
		return map[string]any{"code": 1, "log": "mempool is full",
			"hash": "17145A0A69D1D8D225C01C1CA8AE9EEE8CDDDD2D4E199B3BCCF5B1B6A3A10CF1"}, nil
	})
	res, err := c.BroadcastTxSync(tx)
	require.NoError(t, err)
	require.EqualValues(t, 1, res.Code)
	require.Equal(t, "mempool is full", res.Log)
}

func TestClientStatus(t *testing.T) {
	c := initTestServer(t, func(r *vesnarpc.Request) (any, *vesnarpc.Error) {
		require.Equal(t, vesnarpc.MethodStatus, r.Method)
		return map[string]any{
			"node_info": map[string]any{"network": "vesna-test-0"},
			"sync_info": map[string]any{"latest_block_height": "42", "catching_up": true},
		}, nil
	})
	st, err := c.Status()
	require.NoError(t, err)
	require.Equal(t, "vesna-test-0", st.NodeInfo.Network)
	require.Equal(t, "42", st.SyncInfo.LatestBlockHeight)
	require.True(t, st.SyncInfo.CatchingUp)
}

func TestClientErrorResponse(t *testing.T) {
	c := initTestServer(t, func(r *vesnarpc.Request) (any, *vesnarpc.Error) {
		return nil, vesnarpc.NewInvalidParamsError("unknown path")
	})
	_, err := c.ABCIQuery("bogus", nil)
	require.Error(t, err)

	rpcErr := new(vesnarpc.Error)
	require.ErrorAs(t, err, &rpcErr)
	require.EqualValues(t, -32602, rpcErr.Code)
}

func TestClientRequestIDs(t *testing.T) {
	var (
		seenLock sync.Mutex
		seen     []uint64
	)
	c := initTestServer(t, func(r *vesnarpc.Request) (any, *vesnarpc.Error) {
		seenLock.Lock()
		seen = append(seen, r.ID)
		seenLock.Unlock()
		return map[string]any{"node_info": map[string]any{}, "sync_info": map[string]any{}}, nil
	})
	for i := 0; i < 3; i++ {
		_, err := c.Status()
		require.NoError(t, err)
	}
	seenLock.Lock()
	defer seenLock.Unlock()
	require.Equal(t, []uint64{1, 2, 3}, seen)
}

func TestClientBadEndpoint(t *testing.T) {
	_, err := New(context.Background(), ":not-an-url", Options{})
	require.Error(t, err)
}
