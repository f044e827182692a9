package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"edufair/internal/app"
	"edufair/internal/secrets"
)

func secretsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secrets",
		Short: "Manage sealed credentials (" + app.SecretTwilioToken + ", " + app.SecretSMTPPassword + ")",
	}

	keystore := func() (*secrets.Keystore, error) {
		if e.opts.Passphrase == "" {
			return nil, errors.New("passphrase required (-p or $" + EnvPassphrase + ")")
		}
		path := e.opts.SecretsPath
		if path == "" {
			path = app.DefaultSecretsPath()
		}
		return secrets.Open(path, e.opts.Passphrase)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Store a credential",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ks, err := keystore()
				if err != nil {
					return err
				}
				if err := ks.Set(args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stored %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List stored credential names",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ks, err := keystore()
				if err != nil {
					return err
				}
				keys, err := ks.Keys()
				if err != nil {
					return err
				}
				for _, k := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <key>",
			Short: "Remove a credential",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ks, err := keystore()
				if err != nil {
					return err
				}
				if err := ks.Delete(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			},
		},
	)
	return cmd
}
