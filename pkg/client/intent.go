package client

import (
	"context"
	"fmt"

	"github.com/vesna-dev/vesna-go/pkg/core/intent"
	"github.com/vesna-dev/vesna-go/pkg/crypto/keys"
	"github.com/vesna-dev/vesna-go/pkg/gossip"
	"github.com/vesna-dev/vesna-go/pkg/io"
	"go.uber.org/zap"
)

// IntentSender is the part of the gossip client intents are submitted
// through. gossip.Client implements it.
type IntentSender interface {
	SendIntent(ctx context.Context, data []byte, topic string) (*gossip.Response, error)
}

// BuildIntent resolves and signs the given exchange definitions, each with
// the key of the account it belongs to, collects them into an intent and
// signs the whole set with signKey. The returned bytes are the canonical
// encoding of the signed intent and are what gossip nodes pass around;
// element order in defs does not affect them.
func (s *Submitter) BuildIntent(defs []intent.ExchangeDefinition, signKey *keys.PrivateKey) ([]byte, error) {
	exchanges := make([]*intent.Signed[*intent.Exchange], len(defs))
	for i := range defs {
		ex, err := defs[i].Resolve(s.Codes.LoadPath)
		if err != nil {
			return nil, fmt.Errorf("exchange %d: %w", i, err)
		}
		key, err := FindKey(s.Wallet, ex.Addr, s.querier())
		if err != nil {
			return nil, fmt.Errorf("exchange %d: %w", i, err)
		}
		exchanges[i], err = intent.SignData(key, ex)
		if err != nil {
			return nil, fmt.Errorf("exchange %d: %w", i, err)
		}
	}
	signed, err := intent.SignData(signKey, intent.NewFungibleTokenIntent(exchanges...))
	if err != nil {
		return nil, err
	}
	return io.ToByteArray(signed)
}

// GossipIntent builds a signed intent out of defs and hands it to a gossip
// node under the given topic. The node's response is logged and returned
// as is, intents have no on-chain confirmation to wait for.
func (s *Submitter) GossipIntent(ctx context.Context, sender IntentSender, defs []intent.ExchangeDefinition, signKey *keys.PrivateKey, topic string) (*gossip.Response, error) {
	data, err := s.BuildIntent(defs, signKey)
	if err != nil {
		return nil, err
	}
	resp, err := sender.SendIntent(ctx, data, topic)
	if err != nil {
		return nil, fmt.Errorf("can't gossip the intent: %w", err)
	}
	s.log.Info("intent gossiped",
		zap.String("topic", topic),
		zap.String("result", resp.Result))
	return resp, nil
}
