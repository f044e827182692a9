package commands

import (
	"os"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"edufair/internal/app"
	"edufair/internal/outreach"
)

// EnvPassphrase supplies --passphrase when the flag is not given.
const EnvPassphrase = "FAIR_PASSPHRASE"

// env is shared by every subcommand of one root.
type env struct {
	opts app.Options
	app  *app.App

	open outreach.Opener
}

// Execute runs fairctl with os.Args.
func Execute() error {
	return NewRoot().Execute()
}

// NewRoot builds the command tree.
func NewRoot() *cobra.Command {
	return newRoot(&env{open: browser.OpenURL})
}

func newRoot(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "fairctl",
		Short: "Education fair exhibitor outreach and USSD registration tools",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if e.opts.Passphrase == "" {
				e.opts.Passphrase = os.Getenv(EnvPassphrase)
			}
			a, err := app.New(e.opts)
			if err != nil {
				return err
			}
			e.app = a
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.app != nil {
				e.app.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&e.opts.ConfigPath, "config", "", "config file (default ./fair.toml)")
	root.PersistentFlags().BoolVarP(&e.opts.Verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().StringVarP(&e.opts.Passphrase, "passphrase", "p", "", "keystore passphrase (or $"+EnvPassphrase+")")
	root.PersistentFlags().StringVar(&e.opts.SecretsPath, "secrets", "", "keystore file (default ~/.edufair/secrets.sealed)")

	root.AddCommand(
		boothsCmd(e),
		scheduleCmd(e),
		exportHTMLCmd(e),
		emailCmd(e),
		smsCmd(e),
		whatsappCmd(e),
		sheetsSyncCmd(e),
		ussdInfoCmd(e),
		registrationsCmd(e),
		secretsCmd(e),
	)
	return root
}
