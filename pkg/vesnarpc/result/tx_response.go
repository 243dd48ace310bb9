package result

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vesna-dev/vesna-go/pkg/encoding/address"
	"github.com/vesna-dev/vesna-go/pkg/util"
)

// ErrMissingAttribute is returned when a block commit event lacks one of the
// attributes an applied transaction must carry.
var ErrMissingAttribute = errors.New("malformed event")

// TxResponse is the execution outcome of an applied transaction, decoded
// from the attributes of a block commit event.
type TxResponse struct {
	Info                string
	Height              string
	Hash                string
	Code                string
	GasUsed             string
	InitializedAccounts []util.Uint160
}

// txResponseAux is an auxiliary struct for JSON marshalling, accounts travel
// as bech32m strings.
type txResponseAux struct {
	Info                string   `json:"info"`
	Height              string   `json:"height"`
	Hash                string   `json:"hash"`
	Code                string   `json:"code"`
	GasUsed             string   `json:"gas_used"`
	InitializedAccounts []string `json:"initialized_accounts"`
}

// TxResponseFromEvent extracts the outcome of the applied transaction from a
// block commit event. Every scalar attribute must be present, a missing one
// means the event is not a well-formed application ack. Initialized accounts
// are optional: the attribute value, when present, is a JSON-encoded string
// which itself contains a JSON array of address strings, so it takes a
// second decoding pass.
func TxResponseFromEvent(ev *Event) (*TxResponse, error) {
	resp := new(TxResponse)
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"info", &resp.Info},
		{"height", &resp.Height},
		{"hash", &resp.Hash},
		{"code", &resp.Code},
		{"gas_used", &resp.GasUsed},
	} {
		vals := ev.Events["applied."+f.name]
		if len(vals) == 0 {
			return nil, fmt.Errorf("%w: no applied.%s attribute", ErrMissingAttribute, f.name)
		}
		*f.dst = vals[0]
	}
	accounts, err := initializedAccountsFromEvent(ev)
	if err != nil {
		return nil, err
	}
	resp.InitializedAccounts = accounts
	return resp, nil
}

func initializedAccountsFromEvent(ev *Event) ([]util.Uint160, error) {
	vals := ev.Events["applied.initialized_accounts"]
	if len(vals) == 0 || vals[0] == "" {
		return nil, nil
	}
	var strs []string
	if err := json.Unmarshal([]byte(vals[0]), &strs); err != nil {
		return nil, fmt.Errorf("can't decode initialized accounts: %w", err)
	}
	if len(strs) == 0 {
		return nil, nil
	}
	accounts := make([]util.Uint160, len(strs))
	for i := range strs {
		acc, err := address.StringToUint160(strs[i])
		if err != nil {
			return nil, fmt.Errorf("invalid initialized account %q: %w", strs[i], err)
		}
		accounts[i] = acc
	}
	return accounts, nil
}

// MarshalJSON implements the json.Marshaler interface.
func (r TxResponse) MarshalJSON() ([]byte, error) {
	aux := txResponseAux{
		Info:                r.Info,
		Height:              r.Height,
		Hash:                r.Hash,
		Code:                r.Code,
		GasUsed:             r.GasUsed,
		InitializedAccounts: make([]string, len(r.InitializedAccounts)),
	}
	for i := range r.InitializedAccounts {
		aux.InitializedAccounts[i] = address.Uint160ToString(r.InitializedAccounts[i])
	}
	return json.Marshal(aux)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (r *TxResponse) UnmarshalJSON(data []byte) error {
	var aux txResponseAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var accounts []util.Uint160
	if len(aux.InitializedAccounts) > 0 {
		accounts = make([]util.Uint160, len(aux.InitializedAccounts))
		for i := range aux.InitializedAccounts {
			acc, err := address.StringToUint160(aux.InitializedAccounts[i])
			if err != nil {
				return err
			}
			accounts[i] = acc
		}
	}
	*r = TxResponse{
		Info:                aux.Info,
		Height:              aux.Height,
		Hash:                aux.Hash,
		Code:                aux.Code,
		GasUsed:             aux.GasUsed,
		InitializedAccounts: accounts,
	}
	return nil
}
