// Package app assembles the vesna-go command line application.
package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/urfave/cli"
	"github.com/vesna-dev/vesna-go/cli/intent"
	"github.com/vesna-dev/vesna-go/cli/tx"
	"github.com/vesna-dev/vesna-go/cli/wallet"
	"github.com/vesna-dev/vesna-go/pkg/config"
)

func versionPrinter(c *cli.Context) {
	_, _ = fmt.Fprintf(c.App.Writer, "vesna-go\nVersion: %s\nGoVersion: %s\n",
		config.Version,
		runtime.Version(),
	)
}

// New creates a vesna-go instance of cli.App with all commands included.
func New() *cli.App {
	cli.VersionPrinter = versionPrinter
	ctl := cli.NewApp()
	ctl.Name = "vesna-go"
	ctl.Version = config.Version
	ctl.Usage = "Vesna ledger client"
	ctl.ErrWriter = os.Stdout

	ctl.Commands = append(ctl.Commands, tx.NewCommands()...)
	ctl.Commands = append(ctl.Commands, intent.NewCommands()...)
	ctl.Commands = append(ctl.Commands, wallet.NewCommands()...)
	return ctl
}
