// Package tx implements the transaction submission commands.
package tx

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
	"github.com/vesna-dev/vesna-go/cli/input"
	"github.com/vesna-dev/vesna-go/cli/options"
	"github.com/vesna-dev/vesna-go/pkg/client"
	"github.com/vesna-dev/vesna-go/pkg/core/token"
	"github.com/vesna-dev/vesna-go/pkg/core/transaction"
	"github.com/vesna-dev/vesna-go/pkg/crypto/keys"
	"github.com/vesna-dev/vesna-go/pkg/rpcclient"
	"github.com/vesna-dev/vesna-go/pkg/util"
	"github.com/vesna-dev/vesna-go/pkg/wallet"
)

var (
	codeFlag = cli.StringFlag{
		Name:  "code-path",
		Usage: "Path overriding the transaction code blob of this kind",
	}
	aliasFlag = cli.StringFlag{
		Name:  "alias",
		Usage: "Alias hint for accounts the transaction initializes (suffixed with an index when there are several)",
	}
	dryRunFlag = cli.BoolFlag{
		Name:  "dry-run",
		Usage: "Execute the transaction against the current state without broadcasting it",
	}
	vpFlag = cli.StringFlag{
		Name:  "vp",
		Usage: "Path to the validity predicate blob (the default one of the kind is used otherwise)",
	}
	nftsFlag = cli.StringFlag{
		Name:  "nfts",
		Usage: "Path to the JSON file describing the tokens",
	}
)

func txFlags(extra ...cli.Flag) []cli.Flag {
	common := []cli.Flag{
		options.Wallet,
		options.Config,
		options.Debug,
		codeFlag,
		aliasFlag,
		dryRunFlag,
	}
	return append(append(common, options.RPC...), extra...)
}

// NewCommands returns the 'tx' command.
func NewCommands() []cli.Command {
	return []cli.Command{{
		Name:  "tx",
		Usage: "submit transactions to the ledger",
		Subcommands: []cli.Command{
			{
				Name:   "transfer",
				Usage:  "transfer fungible tokens between accounts",
				Action: submitTransfer,
				Flags: txFlags(
					cli.StringFlag{Name: "source", Usage: "Account (address or alias) the tokens are drawn from, signs the transaction"},
					cli.StringFlag{Name: "target", Usage: "Account the tokens are credited to"},
					cli.StringFlag{Name: "token", Usage: "Account of the token being moved"},
					cli.StringFlag{Name: "amount", Usage: "Quantity to move"},
				),
			},
			{
				Name:   "update-vp",
				Usage:  "replace the validity predicate of an account",
				Action: submitUpdateVP,
				Flags: txFlags(
					cli.StringFlag{Name: "addr", Usage: "Account being updated, signs the transaction"},
					vpFlag,
				),
			},
			{
				Name:   "init-account",
				Usage:  "initialize a new established account",
				Action: submitInitAccount,
				Flags: txFlags(
					cli.StringFlag{Name: "source", Usage: "Account paying for the initialization, signs the transaction"},
					cli.StringFlag{Name: "public-key", Usage: "Public key controlling the new account (hex or a wallet alias)"},
					vpFlag,
				),
			},
			{
				Name:   "bond",
				Usage:  "bond tokens to a validator",
				Action: submitBond,
				Flags: txFlags(
					cli.StringFlag{Name: "validator", Usage: "Validator the tokens are delegated to"},
					cli.StringFlag{Name: "source", Usage: "Account the tokens come from, self-bonding when omitted"},
					cli.StringFlag{Name: "amount", Usage: "Quantity to lock"},
				),
			},
			{
				Name:   "unbond",
				Usage:  "start unbonding tokens from a validator",
				Action: submitUnbond,
				Flags: txFlags(
					cli.StringFlag{Name: "validator", Usage: "Validator the tokens were delegated to"},
					cli.StringFlag{Name: "source", Usage: "Account that bonded the tokens, self-bonded when omitted"},
					cli.StringFlag{Name: "amount", Usage: "Quantity to unlock"},
				),
			},
			{
				Name:   "withdraw",
				Usage:  "withdraw tokens that finished unbonding",
				Action: submitWithdraw,
				Flags: txFlags(
					cli.StringFlag{Name: "validator", Usage: "Validator the tokens were delegated to"},
					cli.StringFlag{Name: "source", Usage: "Account that bonded the tokens, self-bonded when omitted"},
				),
			},
			{
				Name:   "submit",
				Usage:  "submit a custom transaction from raw code and data files",
				Action: submitCustom,
				Flags: txFlags(
					cli.StringFlag{Name: "data-path", Usage: "Path to the raw data payload, absent when omitted"},
					cli.StringFlag{Name: "signer", Usage: "Account signing the transaction, unsigned when omitted"},
				),
			},
		},
	}, {
		Name:  "nft",
		Usage: "manage non-fungible assets",
		Subcommands: []cli.Command{
			{
				Name:   "create",
				Usage:  "establish a new non-fungible asset with its initial tokens",
				Action: submitCreateNFT,
				Flags: txFlags(
					cli.StringFlag{Name: "owner", Usage: "Account owning the asset, signs the transaction"},
					vpFlag,
					nftsFlag,
				),
			},
			{
				Name:   "mint",
				Usage:  "mint tokens under an existing non-fungible asset",
				Action: submitMintNFT,
				Flags: txFlags(
					cli.StringFlag{Name: "owner", Usage: "Account owning the asset, signs the transaction"},
					cli.StringFlag{Name: "token", Usage: "Asset the tokens are minted under"},
					nftsFlag,
				),
			},
		},
	}}
}

// promptResolver asks the user for every alias on the terminal.
type promptResolver struct {
	w io.Writer
}

// ReadAlias implements the client.AliasResolver interface.
func (r promptResolver) ReadAlias(addr string) (string, error) {
	return input.ReadLine(r.w, fmt.Sprintf("Choose an alias for %s (empty to use the address itself): ", addr))
}

// prepare builds a Submitter out of the context flags and hands it to f
// together with the open wallet. Failures are returned as exit errors, so
// actions can return its result directly.
func prepare(ctx *cli.Context, f func(*cli.Context, *wallet.Wallet, *client.Submitter) error) error {
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
	gctx, cancel := options.GetTimeoutContext(ctx)
	defer cancel()
	queryClient, exitErr := options.GetRPCClient(gctx, cfg)
	if exitErr != nil {
		return exitErr
	}
	defer queryClient.Close()

	s := client.NewSubmitter(cfg.LedgerAddress, rpcclient.Options{},
		wall, client.CodeLoader{Dir: cfg.WasmDir},
		promptResolver{w: ctx.App.Writer}, log)
	s.Client = queryClient
	return f(ctx, wall, s)
}

func submitOptions(ctx *cli.Context, signer util.Uint160) client.SubmitOptions {
	return client.SubmitOptions{
		CodePath:  ctx.String("code-path"),
		Signer:    signer,
		AliasHint: ctx.String("alias"),
		DryRun:    ctx.Bool("dry-run"),
	}
}

// submit runs one payload through the submitter and prints the outcome.
func submit(ctx *cli.Context, s *client.Submitter, p transaction.Payload, signer util.Uint160) error {
	gctx, cancel := options.GetTimeoutContext(ctx)
	defer cancel()
	resp, err := s.Submit(gctx, p, submitOptions(ctx, signer))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	return printResponse(ctx, resp)
}

func printResponse(ctx *cli.Context, resp any) error {
	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintln(ctx.App.Writer, string(out))
	return nil
}

func resolveAccount(ctx *cli.Context, w *wallet.Wallet, flagName string) (util.Uint160, error) {
	name := ctx.String(flagName)
	if name == "" {
		return util.Uint160{}, cli.NewExitError(fmt.Errorf("required flag --%s is missing", flagName), 1)
	}
	u, err := w.Resolve(name)
	if err != nil {
		return util.Uint160{}, cli.NewExitError(err, 1)
	}
	return u, nil
}

func resolveOptionalAccount(ctx *cli.Context, w *wallet.Wallet, flagName string) (*util.Uint160, error) {
	if ctx.String(flagName) == "" {
		return nil, nil
	}
	u, err := resolveAccount(ctx, w, flagName)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func amountFromContext(ctx *cli.Context) (token.Amount, error) {
	a, err := token.AmountFromString(ctx.String("amount"))
	if err != nil {
		return 0, cli.NewExitError(fmt.Errorf("invalid amount: %w", err), 1)
	}
	return a, nil
}

func submitTransfer(ctx *cli.Context) error {
	return prepare(ctx, func(ctx *cli.Context, w *wallet.Wallet, s *client.Submitter) error {
		source, err := resolveAccount(ctx, w, "source")
		if err != nil {
			return err
		}
		target, err := resolveAccount(ctx, w, "target")
		if err != nil {
			return err
		}
		tok, err := resolveAccount(ctx, w, "token")
		if err != nil {
			return err
		}
		amount, err := amountFromContext(ctx)
		if err != nil {
			return err
		}
		return submit(ctx, s, &transaction.Transfer{
			Source: source,
			Target: target,
			Token:  tok,
			Amount: amount,
		}, source)
	})
}

func submitUpdateVP(ctx *cli.Context) error {
	return prepare(ctx, func(ctx *cli.Context, w *wallet.Wallet, s *client.Submitter) error {
		addr, err := resolveAccount(ctx, w, "addr")
		if err != nil {
			return err
		}
		vp, err := loadVP(ctx, s, transaction.UserVPCode)
		if err != nil {
			return err
		}
		return submit(ctx, s, &transaction.UpdateVP{Addr: addr, VPCode: vp}, addr)
	})
}

func submitInitAccount(ctx *cli.Context) error {
	return prepare(ctx, func(ctx *cli.Context, w *wallet.Wallet, s *client.Submitter) error {
		source, err := resolveAccount(ctx, w, "source")
		if err != nil {
			return err
		}
		pub, err := resolvePublicKey(ctx, w)
		if err != nil {
			return err
		}
		vp, err := loadVP(ctx, s, transaction.UserVPCode)
		if err != nil {
			return err
		}
		return submit(ctx, s, &transaction.InitAccount{PublicKey: *pub, VPCode: vp}, source)
	})
}

func submitBond(ctx *cli.Context) error {
	return prepare(ctx, func(ctx *cli.Context, w *wallet.Wallet, s *client.Submitter) error {
		validator, source, err := stakingAccounts(ctx, w)
		if err != nil {
			return err
		}
		amount, err := amountFromContext(ctx)
		if err != nil {
			return err
		}
		return submit(ctx, s, &transaction.Bond{
			Validator: validator,
			Amount:    amount,
			Source:    source,
		}, stakingSigner(validator, source))
	})
}

func submitUnbond(ctx *cli.Context) error {
	return prepare(ctx, func(ctx *cli.Context, w *wallet.Wallet, s *client.Submitter) error {
		validator, source, err := stakingAccounts(ctx, w)
		if err != nil {
			return err
		}
		amount, err := amountFromContext(ctx)
		if err != nil {
			return err
		}
		return submit(ctx, s, &transaction.Unbond{
			Validator: validator,
			Amount:    amount,
			Source:    source,
		}, stakingSigner(validator, source))
	})
}

func submitWithdraw(ctx *cli.Context) error {
	return prepare(ctx, func(ctx *cli.Context, w *wallet.Wallet, s *client.Submitter) error {
		validator, source, err := stakingAccounts(ctx, w)
		if err != nil {
			return err
		}
		return submit(ctx, s, &transaction.Withdraw{
			Validator: validator,
			Source:    source,
		}, stakingSigner(validator, source))
	})
}

func submitCreateNFT(ctx *cli.Context) error {
	return prepare(ctx, func(ctx *cli.Context, w *wallet.Wallet, s *client.Submitter) error {
		owner, err := resolveAccount(ctx, w, "owner")
		if err != nil {
			return err
		}
		vp, err := loadVP(ctx, s, transaction.NFTVPCode)
		if err != nil {
			return err
		}
		tokens, err := loadNFTTokens(ctx)
		if err != nil {
			return err
		}
		return submit(ctx, s, &transaction.CreateNFT{
			Owner:  owner,
			VPCode: vp,
			Tokens: tokens,
		}, owner)
	})
}

func submitMintNFT(ctx *cli.Context) error {
	return prepare(ctx, func(ctx *cli.Context, w *wallet.Wallet, s *client.Submitter) error {
		owner, err := resolveAccount(ctx, w, "owner")
		if err != nil {
			return err
		}
		asset, err := resolveAccount(ctx, w, "token")
		if err != nil {
			return err
		}
		tokens, err := loadNFTTokens(ctx)
		if err != nil {
			return err
		}
		return submit(ctx, s, &transaction.MintNFT{
			Owner:   owner,
			Address: asset,
			Tokens:  tokens,
		}, owner)
	})
}

func submitCustom(ctx *cli.Context) error {
	return prepare(ctx, func(ctx *cli.Context, w *wallet.Wallet, s *client.Submitter) error {
		codePath := ctx.String("code-path")
		if codePath == "" {
			return cli.NewExitError("required flag --code-path is missing", 1)
		}
		var signer util.Uint160
		if name := ctx.String("signer"); name != "" {
			var err error
			signer, err = w.Resolve(name)
			if err != nil {
				return cli.NewExitError(err, 1)
			}
		}
		gctx, cancel := options.GetTimeoutContext(ctx)
		defer cancel()
		resp, err := s.SubmitCustom(gctx, codePath, ctx.String("data-path"), client.SubmitOptions{
			Signer:    signer,
			AliasHint: ctx.String("alias"),
			DryRun:    ctx.Bool("dry-run"),
		})
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		return printResponse(ctx, resp)
	})
}

func stakingAccounts(ctx *cli.Context, w *wallet.Wallet) (util.Uint160, *util.Uint160, error) {
	validator, err := resolveAccount(ctx, w, "validator")
	if err != nil {
		return util.Uint160{}, nil, err
	}
	source, err := resolveOptionalAccount(ctx, w, "source")
	if err != nil {
		return util.Uint160{}, nil, err
	}
	return validator, source, nil
}

// stakingSigner picks the account signing a staking transaction: the token
// source when there is one, the validator itself otherwise.
func stakingSigner(validator util.Uint160, source *util.Uint160) util.Uint160 {
	if source != nil {
		return *source
	}
	return validator
}

// loadVP reads the validity predicate named by the --vp flag, falling back
// to the kind's default blob.
func loadVP(ctx *cli.Context, s *client.Submitter, defaultName string) ([]byte, error) {
	var (
		vp  []byte
		err error
	)
	if path := ctx.String("vp"); path != "" {
		vp, err = s.Codes.LoadPath(path)
	} else {
		vp, err = s.Codes.Load(defaultName)
	}
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}
	return vp, nil
}

// resolvePublicKey turns the --public-key flag into a key: a wallet alias
// names the key stored under it, anything else must parse as hex.
func resolvePublicKey(ctx *cli.Context, w *wallet.Wallet) (*keys.PublicKey, error) {
	name := ctx.String("public-key")
	if name == "" {
		return nil, cli.NewExitError("required flag --public-key is missing", 1)
	}
	if addr, ok := w.AddressByAlias(name); ok {
		if k := w.KeyByAddress(addr); k != nil {
			pub, err := keys.NewPublicKeyFromString(k.PublicKey)
			if err != nil {
				return nil, cli.NewExitError(err, 1)
			}
			return pub, nil
		}
	}
	pub, err := keys.NewPublicKeyFromString(name)
	if err != nil {
		return nil, cli.NewExitError(fmt.Errorf("invalid public key: %w", err), 1)
	}
	return pub, nil
}

func loadNFTTokens(ctx *cli.Context) ([]transaction.NFTToken, error) {
	path := ctx.String("nfts")
	if path == "" {
		return nil, cli.NewExitError("required flag --nfts is missing", 1)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cli.NewExitError(err, 1)
	}
	var tokens []transaction.NFTToken
	if err := json.Unmarshal(data, &tokens); err != nil {
		return nil, cli.NewExitError(fmt.Errorf("invalid token file %s: %w", path, err), 1)
	}
	return tokens, nil
}
