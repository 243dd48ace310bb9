package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/vesna-dev/vesna-go/pkg/core/transaction"
	"github.com/vesna-dev/vesna-go/pkg/vesnarpc"
	"github.com/vesna-dev/vesna-go/pkg/vesnarpc/result"
	"go.uber.org/zap"
)

// ErrTxRejected is returned when the node's mempool refuses a transaction.
// The returned error wraps it together with the node's diagnostic.
var ErrTxRejected = errors.New("transaction rejected by the mempool")

// RPCBroadcaster is the part of the websocket client the confirmation flow
// needs: event subscriptions and the synchronous broadcast call.
// rpcclient.WSClient implements it.
type RPCBroadcaster interface {
	Subscribe(q string, rcvr chan<- *result.Event) (string, error)
	Unsubscribe(id string) error
	BroadcastTxSync(tx []byte) (*result.BroadcastResult, error)
}

// BroadcastTx runs one transaction through the broadcast and confirmation
// sequence over an established connection: subscribe to the block event
// applying the transaction, broadcast it, wait for the event and decode the
// execution outcome out of it.
//
// The subscription is registered strictly before the broadcast goes out.
// Done the other way around there is a window where the block applying the
// transaction is announced while no filter matches it, and the wait below
// never returns.
//
// The wait has no deadline of its own, finality takes as long as it takes.
// The context is the only way to give up early, and an interrupted wait can
// leave the subscription dangling on the node. Nothing is ever retried:
// subscription failures, mempool rejections and malformed confirmation
// events all surface as errors of this one attempt.
func BroadcastTx(ctx context.Context, bc RPCBroadcaster, tx *transaction.Transaction, log *zap.Logger) (*result.TxResponse, error) {
	// The fingerprint covers the exact bytes broadcast below, computed
	// before the connection is used for anything.
	fingerprint := tx.Hash()
	query := vesnarpc.NewBlockQuery().AndAppliedHash(fingerprint)

	rcvr := make(chan *result.Event)
	subID, err := bc.Subscribe(query.String(), rcvr)
	if err != nil {
		return nil, fmt.Errorf("can't subscribe for the confirmation: %w", err)
	}
	defer func() {
		if err := bc.Unsubscribe(subID); err != nil {
			log.Warn("failed to remove the confirmation subscription",
				zap.String("query", query.String()),
				zap.Error(err))
		}
	}()

	ack, err := bc.BroadcastTxSync(tx.Bytes())
	if err != nil {
		return nil, fmt.Errorf("can't broadcast the transaction: %w", err)
	}
	if ack.Code != 0 {
		return nil, fmt.Errorf("%w: %s", ErrTxRejected, ack.Log)
	}
	log.Info("transaction added to the mempool",
		zap.String("hash", fingerprint.String()),
		zap.String("log", ack.Log))

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for the confirmation of %s: %w", fingerprint.String(), ctx.Err())
	case ev := <-rcvr:
		resp, err := result.TxResponseFromEvent(ev)
		if err != nil {
			return nil, fmt.Errorf("bad confirmation event for %s: %w", fingerprint.String(), err)
		}
		return resp, nil
	}
}
