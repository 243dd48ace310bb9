// Package wallet implements the wallet management commands.
package wallet

import (
	"errors"
	"fmt"

	"github.com/urfave/cli"
	"github.com/vesna-dev/vesna-go/cli/flags"
	"github.com/vesna-dev/vesna-go/cli/input"
	"github.com/vesna-dev/vesna-go/cli/options"
	"github.com/vesna-dev/vesna-go/pkg/crypto/keys"
	"github.com/vesna-dev/vesna-go/pkg/encoding/address"
	"github.com/vesna-dev/vesna-go/pkg/wallet"
)

var (
	errNoPath         = errors.New("wallet location is mandatory, pass it with the --wallet or -w flag")
	errPhraseMismatch = errors.New("the entered pass-phrases do not match, maybe you have misspelled them")
)

var aliasFlag = cli.StringFlag{
	Name:  "alias, a",
	Usage: "Alias of the key",
}

// NewCommands returns the 'wallet' command.
func NewCommands() []cli.Command {
	return []cli.Command{{
		Name:  "wallet",
		Usage: "create and manage the alias and key store",
		Subcommands: []cli.Command{
			{
				Name:   "init",
				Usage:  "create a new empty wallet",
				Action: initWallet,
				Flags: []cli.Flag{
					options.Wallet,
					cli.BoolFlag{
						Name:  "account",
						Usage: "Generate a fresh key into the new wallet",
					},
				},
			},
			{
				Name:   "import",
				Usage:  "import a private key given in the KIF format",
				Action: importKey,
				Flags: []cli.Flag{
					options.Wallet,
					aliasFlag,
					cli.StringFlag{
						Name:  "kif",
						Usage: "KIF-encoded key to import",
					},
				},
			},
			{
				Name:   "list",
				Usage:  "list every alias the wallet holds",
				Action: listWallet,
				Flags:  []cli.Flag{options.Wallet},
			},
			{
				Name:   "show",
				Usage:  "show the wallet entry of an address",
				Action: showAddress,
				Flags: []cli.Flag{
					options.Wallet,
					flags.AddressFlag{
						Name:  "address",
						Usage: "Address to look up",
					},
				},
			},
		},
	}}
}

func walletPath(ctx *cli.Context) (string, error) {
	path := ctx.String("wallet")
	if path == "" {
		return "", cli.NewExitError(errNoPath, 1)
	}
	return path, nil
}

func initWallet(ctx *cli.Context) error {
	path, err := walletPath(ctx)
	if err != nil {
		return err
	}
	w := wallet.NewWallet(path)
	if ctx.Bool("account") {
		if err := addAccount(ctx, w); err != nil {
			return err
		}
	}
	if err := w.Save(); err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintf(ctx.App.Writer, "wallet created at %s\n", path)
	return nil
}

func addAccount(ctx *cli.Context, w *wallet.Wallet) error {
	priv, err := keys.NewPrivateKey()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer priv.Destroy()
	alias, err := input.ReadLine(ctx.App.Writer, "Enter an alias for the new key: ")
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if alias == "" {
		alias = priv.Address()
	}
	pass, err := input.ReadPassword(ctx.App.Writer, "Enter a passphrase (empty for an unencrypted key): ")
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if pass == "" {
		if !w.AddKey(alias, priv) {
			return cli.NewExitError(fmt.Errorf("alias %q is already taken", alias), 1)
		}
		fmt.Fprintf(ctx.App.Writer, "added key %s (%s)\n", alias, priv.Address())
		return nil
	}
	confirm, err := input.ReadPassword(ctx.App.Writer, "Confirm the passphrase: ")
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if pass != confirm {
		return cli.NewExitError(errPhraseMismatch, 1)
	}
	encrypted, err := keys.Encrypt(priv, pass, keys.DefaultScryptParams())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if !w.AddEncryptedKey(alias, priv.Address(), priv.PublicKey().String(), encrypted) {
		return cli.NewExitError(fmt.Errorf("alias %q is already taken", alias), 1)
	}
	fmt.Fprintf(ctx.App.Writer, "added encrypted key %s (%s)\n", alias, priv.Address())
	return nil
}

func importKey(ctx *cli.Context) error {
	path, err := walletPath(ctx)
	if err != nil {
		return err
	}
	w, err := wallet.NewWalletFromFile(path)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	kif := ctx.String("kif")
	if kif == "" {
		kif, err = input.ReadPassword(ctx.App.Writer, "Enter the KIF-encoded key: ")
		if err != nil {
			return cli.NewExitError(err, 1)
		}
	}
	priv, err := keys.NewPrivateKeyFromKIF(kif)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer priv.Destroy()
	alias := ctx.String("alias")
	if alias == "" {
		alias = priv.Address()
	}
	if !w.AddKey(alias, priv) {
		return cli.NewExitError(fmt.Errorf("alias %q is already taken", alias), 1)
	}
	if err := w.Save(); err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintf(ctx.App.Writer, "imported key %s (%s)\n", alias, priv.Address())
	return nil
}

func listWallet(ctx *cli.Context) error {
	path, err := walletPath(ctx)
	if err != nil {
		return err
	}
	w, err := wallet.NewWalletFromFile(path)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	for _, k := range w.Keys {
		encrypted := ""
		if k.EncryptedKIF != "" {
			encrypted = " (encrypted)"
		}
		fmt.Fprintf(ctx.App.Writer, "key\t%s\t%s%s\n", k.Alias, k.Address, encrypted)
	}
	for _, e := range w.Addresses {
		fmt.Fprintf(ctx.App.Writer, "address\t%s\t%s\n", e.Alias, e.Address)
	}
	return nil
}

func showAddress(ctx *cli.Context) error {
	path, err := walletPath(ctx)
	if err != nil {
		return err
	}
	w, err := wallet.NewWalletFromFile(path)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	addrFlag := flags.AddressFromContext(ctx, "address")
	if !addrFlag.IsSet {
		return cli.NewExitError("required flag --address is missing", 1)
	}
	addr := address.Uint160ToString(addrFlag.Uint160())
	if k := w.KeyByAddress(addr); k != nil {
		fmt.Fprintf(ctx.App.Writer, "alias:\t%s\naddress:\t%s\npublic key:\t%s\n", k.Alias, k.Address, k.PublicKey)
		return nil
	}
	for _, e := range w.Addresses {
		if e.Address == addr {
			fmt.Fprintf(ctx.App.Writer, "alias:\t%s\naddress:\t%s\n", e.Alias, e.Address)
			return nil
		}
	}
	return cli.NewExitError(fmt.Errorf("address %s is not in the wallet", addr), 1)
}
