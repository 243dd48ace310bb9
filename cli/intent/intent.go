// Package intent implements the intent gossip commands.
package intent

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli"
	"github.com/vesna-dev/vesna-go/cli/options"
	"github.com/vesna-dev/vesna-go/pkg/client"
	coreintent "github.com/vesna-dev/vesna-go/pkg/core/intent"
	"github.com/vesna-dev/vesna-go/pkg/gossip"
	"github.com/vesna-dev/vesna-go/pkg/rpcclient"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

var (
	nodeFlag = cli.StringFlag{
		Name:  "node, n",
		Usage: "gRPC endpoint of the gossip node (overrides the configuration)",
	}
	topicFlag = cli.StringFlag{
		Name:  "topic",
		Usage: "Topic the intent is gossiped under",
	}
)

// NewCommands returns the 'intent' command.
func NewCommands() []cli.Command {
	return []cli.Command{{
		Name:  "intent",
		Usage: "gossip trading intents to matchmakers",
		Subcommands: []cli.Command{
			{
				Name:   "submit",
				Usage:  "sign a set of exchanges and gossip it as one intent",
				Action: submitIntent,
				Flags: append([]cli.Flag{
					cli.StringFlag{Name: "file, f", Usage: "JSON file with the exchange definitions"},
					cli.StringFlag{Name: "signer", Usage: "Account (address or alias) signing the whole intent"},
					cli.BoolFlag{Name: "stdout", Usage: "Write the signed intent to standard output instead of gossiping it"},
					topicFlag,
					nodeFlag,
					options.Wallet,
					options.Config,
					options.Debug,
				}, options.RPC...),
			},
			{
				Name:   "subscribe-topic",
				Usage:  "make the gossip node join a topic",
				Action: subscribeTopic,
				Flags: []cli.Flag{
					topicFlag,
					nodeFlag,
					options.Config,
					cli.DurationFlag{Name: "timeout, s", Usage: "Timeout for the request"},
				},
			},
		},
	}}
}

func submitIntent(ctx *cli.Context) error {
	cfg, err := options.GetConfigFromContext(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	log, err := options.HandleLoggingParams(ctx.Bool("debug"), cfg)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer func() { _ = log.Sync() }()
	wall, exitErr := options.GetWallet(cfg)
	if exitErr != nil {
		return exitErr
	}

	defs, err := readDefinitions(ctx.String("file"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	gctx, cancel := options.GetTimeoutContext(ctx)
	defer cancel()
	queryClient, exitErr := options.GetRPCClient(gctx, cfg)
	if exitErr != nil {
		return exitErr
	}
	defer queryClient.Close()

	s := client.NewSubmitter(cfg.LedgerAddress, rpcclient.Options{},
		wall, client.CodeLoader{Dir: cfg.WasmDir}, nil, log)
	s.Client = queryClient

	signer, err := wall.Resolve(ctx.String("signer"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	signKey, err := client.FindKey(wall, signer, queryClient)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if ctx.Bool("stdout") {
		data, err := s.BuildIntent(defs, signKey)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		if _, err := os.Stdout.Write(data); err != nil {
			return cli.NewExitError(err, 1)
		}
		return nil
	}

	gc, err := gossip.Dial(gctx, cfg.GossipAddress,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer gc.Close()

	resp, err := s.GossipIntent(gctx, gc, defs, signKey, ctx.String("topic"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	spew.Fdump(ctx.App.Writer, resp)
	return nil
}

func subscribeTopic(ctx *cli.Context) error {
	cfg, err := options.GetConfigFromContext(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	topic := ctx.String("topic")
	if topic == "" {
		return cli.NewExitError("required flag --topic is missing", 1)
	}

	gctx, cancel := options.GetTimeoutContext(ctx)
	defer cancel()
	gc, err := gossip.Dial(gctx, cfg.GossipAddress,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer gc.Close()

	resp, err := gc.SubscribeTopic(gctx, topic)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	spew.Fdump(ctx.App.Writer, resp)
	return nil
}

func readDefinitions(path string) ([]coreintent.ExchangeDefinition, error) {
	if path == "" {
		return nil, fmt.Errorf("required flag --file is missing")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var defs []coreintent.ExchangeDefinition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("invalid exchange file %s: %w", path, err)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("exchange file %s is empty", path)
	}
	return defs, nil
}
