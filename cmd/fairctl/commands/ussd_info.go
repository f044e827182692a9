package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ussd-info <phone>: how a caller registers by USSD.
func ussdInfoCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "ussd-info <phone>",
		Short: "Print USSD registration instructions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), e.app.Event().DialInstructions(args[0]))
			return err
		},
	}
}
