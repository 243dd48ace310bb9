/*
Package client implements the transaction submission pipeline of the Vesna
client.

A submission starts from a typed payload, resolves the transaction code
blob for it, signs the result with a wallet key and runs the broadcast and
confirmation sequence against a ledger node over a persistent websocket
connection. The execution outcome comes back decoded from the block event
applying the transaction, and any account the transaction initialized is
recorded in the wallet under a freshly picked alias.

The intent gossip side channel lives here too: exchanges are signed by
their owners, collected into an intent, signed by the submitter and handed
to a gossip node, with no confirmation step of any kind.
*/
package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/vesna-dev/vesna-go/pkg/core/transaction"
	"github.com/vesna-dev/vesna-go/pkg/crypto/keys"
	"github.com/vesna-dev/vesna-go/pkg/rpcclient"
	"github.com/vesna-dev/vesna-go/pkg/util"
	"github.com/vesna-dev/vesna-go/pkg/vesnarpc/result"
	"github.com/vesna-dev/vesna-go/pkg/wallet"
	"go.uber.org/zap"
)

// ErrNoSigner is returned when a submission requiring a signature is given
// neither a key nor an account to look one up for.
var ErrNoSigner = errors.New("no signing key and no signer account given")

// Submitter drives transaction submissions against one ledger node. It is
// not safe for concurrent use: the wallet it reconciles accounts into is
// single-writer, so simultaneous submissions have to be serialized by the
// caller.
type Submitter struct {
	// Ledger is the websocket RPC endpoint of the ledger node.
	Ledger string

	// Options tune the connections made to the node.
	Options rpcclient.Options

	// Wallet provides signing keys and stores aliases for initialized
	// accounts.
	Wallet *wallet.Wallet

	// Codes loads transaction code and validity predicate blobs.
	Codes CodeLoader

	// Resolver picks aliases for initialized accounts.
	Resolver AliasResolver

	// Client serves one-shot queries: ledger-side key resolution and dry
	// runs. Optional, without it only wallet-resident keys can sign and
	// dry runs fail.
	Client *rpcclient.Client

	log *zap.Logger

	// dial opens the confirmation-protocol connection, a test seam.
	dial func(ctx context.Context) (RPCBroadcaster, func() error, error)
}

// SubmitOptions carry the per-submission parameters common to all
// transaction kinds.
type SubmitOptions struct {
	// CodePath overrides the code blob of the payload's kind.
	CodePath string

	// SignerKey signs the transaction when set, taking precedence over
	// Signer.
	SignerKey *keys.PrivateKey

	// Signer is the account whose key (found in the wallet, possibly via a
	// ledger query) signs the transaction.
	Signer util.Uint160

	// AliasHint, when non-empty, names the accounts the transaction
	// initializes without prompting: the hint itself for one account,
	// hint0, hint1 and so on for several.
	AliasHint string

	// DryRun executes the transaction against the node's current state
	// without committing or broadcasting anything.
	DryRun bool
}

// NewSubmitter returns a Submitter for the given ledger endpoint. A nil
// logger disables logging, a nil resolver aliases initialized accounts by
// their addresses.
func NewSubmitter(ledger string, opts rpcclient.Options, w *wallet.Wallet, codes CodeLoader, resolver AliasResolver, log *zap.Logger) *Submitter {
	if log == nil {
		log = zap.NewNop()
	}
	if resolver == nil {
		resolver = AutoAliasResolver{}
	}
	s := &Submitter{
		Ledger:   ledger,
		Options:  opts,
		Wallet:   w,
		Codes:    codes,
		Resolver: resolver,
		log:      log,
	}
	s.dial = func(ctx context.Context) (RPCBroadcaster, func() error, error) {
		ws, err := rpcclient.NewWS(ctx, s.Ledger, s.Options)
		if err != nil {
			return nil, nil, err
		}
		return ws, ws.Close, nil
	}
	return s
}

// Submit builds, signs and submits a transaction carrying the given typed
// payload, returning the decoded execution outcome once a block applies
// it. Code resolution, payload encoding and signing all happen before any
// connection is opened, their failures leave no network state behind.
func (s *Submitter) Submit(ctx context.Context, p transaction.Payload, o SubmitOptions) (*result.TxResponse, error) {
	code, err := s.loadCode(o.CodePath, p.CodeName())
	if err != nil {
		return nil, err
	}
	tx, err := transaction.New(code, p)
	if err != nil {
		return nil, fmt.Errorf("can't encode the %s payload: %w", p.CodeName(), err)
	}
	return s.submitTx(ctx, tx, o, true)
}

// SubmitCustom submits a transaction made of a raw code blob and optional
// raw data bytes. It is the only kind that may go out unsigned: when
// neither a key nor a signer is given the transaction is broadcast as is.
func (s *Submitter) SubmitCustom(ctx context.Context, codePath, dataPath string, o SubmitOptions) (*result.TxResponse, error) {
	code, err := s.Codes.LoadPath(codePath)
	if err != nil {
		return nil, err
	}
	var data []byte
	if dataPath != "" {
		data, err = s.Codes.LoadPath(dataPath)
		if err != nil {
			return nil, err
		}
	}
	return s.submitTx(ctx, transaction.NewRaw(code, data), o, false)
}

func (s *Submitter) loadCode(override, name string) ([]byte, error) {
	if override != "" {
		return s.Codes.LoadPath(override)
	}
	return s.Codes.Load(name)
}

func (s *Submitter) submitTx(ctx context.Context, tx *transaction.Transaction, o SubmitOptions, mustSign bool) (*result.TxResponse, error) {
	key := o.SignerKey
	if key == nil && !o.Signer.Equals(util.Uint160{}) {
		var err error
		key, err = FindKey(s.Wallet, o.Signer, s.querier())
		if err != nil {
			return nil, err
		}
	}
	if key != nil {
		tx = tx.Sign(key)
	} else if mustSign {
		return nil, ErrNoSigner
	}

	if o.DryRun {
		return s.dryRun(tx)
	}

	bc, closeConn, err := s.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't connect to %s: %w", s.Ledger, err)
	}
	defer func() {
		if err := closeConn(); err != nil {
			s.log.Warn("connection teardown failed", zap.Error(err))
		}
	}()

	resp, err := BroadcastTx(ctx, bc, tx, s.log)
	if err != nil {
		return nil, err
	}
	if err := SaveInitializedAccounts(s.Wallet, resp.InitializedAccounts, o.AliasHint, s.Resolver, s.log); err != nil {
		// The transaction is final on chain whatever happens to the
		// wallet, so this never fails the submission.
		s.log.Warn("failed to record initialized accounts", zap.Error(err))
	}
	return resp, nil
}

func (s *Submitter) dryRun(tx *transaction.Transaction) (*result.TxResponse, error) {
	if s.Client == nil {
		return nil, errors.New("dry runs need a query client")
	}
	resp, err := s.Client.DryRunTx(tx.Bytes())
	if err != nil {
		return nil, err
	}
	return &result.TxResponse{
		Info:   resp.Info,
		Hash:   tx.Hash().String(),
		Code:   "0",
		Height: resp.Height,
	}, nil
}

func (s *Submitter) querier() PublicKeyQuerier {
	// An untyped nil Client must not become a non-nil interface value.
	if s.Client == nil {
		return nil
	}
	return s.Client
}
