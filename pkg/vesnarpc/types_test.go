package vesnarpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vesna-dev/vesna-go/pkg/util"
)

func TestQuery(t *testing.T) {
	require.Equal(t, "tm.event = 'NewBlock'", NewBlockQuery().String())

	h, err := util.Uint256DecodeString("17145a0a69d1d8d225c01c1ca8ae9eee8cdddd2d4e199b3bccf5b1b6a3a10cf1")
	require.NoError(t, err)
	require.Equal(t,
		"tm.event = 'NewBlock' AND applied.hash = '17145A0A69D1D8D225C01C1CA8AE9EEE8CDDDD2D4E199B3BCCF5B1B6A3A10CF1'",
		NewBlockQuery().AndAppliedHash(h).String())

	require.Equal(t,
		"tm.event = 'NewBlock' AND message.module = 'governance'",
		NewBlockQuery().AndEq("message.module", "governance").String())
}

func TestRequestMarshaling(t *testing.T) {
	r := NewRequest(42, MethodSubscribe, map[string]any{"query": "tm.event = 'NewBlock'"})
	data, err := json.Marshal(r)
	require.NoError(t, err)
	require.JSONEq(t,
		`{"jsonrpc": "2.0", "id": 42, "method": "subscribe", "params": {"query": "tm.event = 'NewBlock'"}}`,
		string(data))

	t.Run("no params", func(t *testing.T) {
		data, err := json.Marshal(NewRequest(7, MethodStatus, nil))
		require.NoError(t, err)
		require.JSONEq(t, `{"jsonrpc": "2.0", "id": 7, "method": "status"}`, string(data))
	})
}

func TestResponseUnmarshaling(t *testing.T) {
	var resp Response
	require.NoError(t, json.Unmarshal([]byte(
		`{"jsonrpc": "2.0", "id": 1, "result": {"code": 0}}`), &resp))
	require.Nil(t, resp.Error)
	require.JSONEq(t, `{"code": 0}`, string(resp.Result))

	require.NoError(t, json.Unmarshal([]byte(
		`{"jsonrpc": "2.0", "id": 2, "error": {"code": -32602, "message": "Invalid Params", "data": "empty query"}}`), &resp))
	require.NotNil(t, resp.Error)
	require.Equal(t, NewInvalidParamsError("empty query"), resp.Error)
	require.Equal(t, "Invalid Params (-32602) - empty query", resp.Error.Error())
}

func TestErrorFormatting(t *testing.T) {
	require.Equal(t, "Internal error (-32603)", NewInternalServerError("").Error())
	require.Equal(t, "Parse Error (-32700) - unexpected EOF", NewParseError("unexpected EOF").Error())
}
