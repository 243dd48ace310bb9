/*
Package options contains the common CLI options and the helper functions
turning them into configured client components.
*/
package options

import (
	"context"
	"fmt"
	"net/url"

	"github.com/urfave/cli"
	"github.com/vesna-dev/vesna-go/pkg/config"
	"github.com/vesna-dev/vesna-go/pkg/rpcclient"
	"github.com/vesna-dev/vesna-go/pkg/wallet"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RPCEndpointFlag is a long flag name for the ledger RPC endpoint. It can
// be used to check for flag presence in the context.
const RPCEndpointFlag = "rpc-endpoint"

// RPC is a set of flags used for RPC connections (endpoint and timeout).
var RPC = []cli.Flag{
	cli.StringFlag{
		Name:  RPCEndpointFlag + ", r",
		Usage: "Websocket RPC endpoint of the ledger node",
	},
	cli.DurationFlag{
		Name:  "timeout, s",
		Usage: "Timeout for the whole operation (confirmation waits are unbounded without it)",
	},
}

// Wallet is a flag for commands needing the wallet file.
var Wallet = cli.StringFlag{
	Name:  "wallet, w",
	Usage: "Path to the wallet file (overrides the configuration)",
}

// Config is a flag naming the configuration file to use.
var Config = cli.StringFlag{
	Name:  "config-file, c",
	Usage: "Path to the client configuration file",
}

// Debug is a flag raising the logging level to debug.
var Debug = cli.BoolFlag{
	Name:  "debug, d",
	Usage: "Enable debug logging (LOTS of output, overrides configuration)",
}

// GetConfigFromContext loads the configuration file named by the context
// (or the defaults when none is) and applies the flag overrides on top.
func GetConfigFromContext(ctx *cli.Context) (config.Config, error) {
	cfg, err := config.Load(ctx.String("config-file"))
	if err != nil {
		return cfg, err
	}
	if endpoint := ctx.String(RPCEndpointFlag); endpoint != "" {
		cfg.LedgerAddress = endpoint
	}
	if wallet := ctx.String("wallet"); wallet != "" {
		cfg.WalletPath = wallet
	}
	if node := ctx.String("node"); node != "" {
		cfg.GossipAddress = node
	}
	return cfg, nil
}

// GetTimeoutContext returns a context.Context bounded by the user-set
// timeout. Without the flag the context has no deadline: a submission then
// waits for its confirmation for as long as chain finality takes.
func GetTimeoutContext(ctx *cli.Context) (context.Context, func()) {
	if dur := ctx.Duration("timeout"); dur != 0 {
		return context.WithTimeout(context.Background(), dur)
	}
	return context.WithCancel(context.Background())
}

// HTTPEndpoint derives the plain HTTP endpoint serving one-shot requests
// from the node's websocket endpoint.
func HTTPEndpoint(ledger string) (string, error) {
	u, err := url.Parse(ledger)
	if err != nil {
		return "", fmt.Errorf("invalid ledger endpoint: %w", err)
	}
	switch u.Scheme {
	case "ws":
		u.Scheme = "http"
	case "wss":
		u.Scheme = "https"
	case "http", "https":
	default:
		return "", fmt.Errorf("invalid ledger endpoint scheme %q", u.Scheme)
	}
	u.Path = ""
	return u.String(), nil
}

// GetRPCClient returns an RPC client for one-shot queries against the
// configured ledger node.
func GetRPCClient(gctx context.Context, cfg config.Config) (*rpcclient.Client, cli.ExitCoder) {
	endpoint, err := HTTPEndpoint(cfg.LedgerAddress)
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}
	c, err := rpcclient.New(gctx, endpoint, rpcclient.Options{})
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}
	return c, nil
}

// GetWallet opens the wallet the configuration points at.
func GetWallet(cfg config.Config) (*wallet.Wallet, cli.ExitCoder) {
	w, err := wallet.NewWalletFromFile(cfg.WalletPath)
	if err != nil {
		return nil, cli.NewExitError(fmt.Errorf("can't open wallet: %w", err), 1)
	}
	return w, nil
}

// HandleLoggingParams reads the logging level from the configuration, with
// the debug flag overriding it, and builds a console logger.
func HandleLoggingParams(debug bool, cfg config.Config) (*zap.Logger, error) {
	var (
		level = zapcore.InfoLevel
		err   error
	)
	if len(cfg.LogLevel) > 0 {
		level, err = zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("log setting: %w", err)
		}
	}
	if debug {
		level = zapcore.DebugLevel
	}

	cc := zap.NewProductionConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	cc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cc.Encoding = "console"
	cc.Level = zap.NewAtomicLevelAt(level)
	cc.Sampling = nil
	return cc.Build()
}
