package result

// ABCIQueryResult wraps the response of an abci_query call.
type ABCIQueryResult struct {
	Response ABCIQueryResponse `json:"response"`
}

// ABCIQueryResponse is the application's answer to a read-only query. Value
// is base64 in JSON and carries the query-specific payload.
type ABCIQueryResponse struct {
	Code   uint32 `json:"code"`
	Log    string `json:"log"`
	Info   string `json:"info"`
	Key    []byte `json:"key"`
	Value  []byte `json:"value"`
	Height string `json:"height"`
}
