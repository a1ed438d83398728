package cli

import (
	"fmt"

	"github.com/dmitrijs2005/keeperbackup/internal/cryptox"
	"github.com/spf13/cobra"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <backup-file>",
		Short: "Print the public header of a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := cryptox.ReadHeader(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "format version: %d\n", h.Version)
			fmt.Fprintf(out, "kdf ops limit:  %d\n", h.Params.OpsLimit)
			fmt.Fprintf(out, "kdf mem limit:  %d\n", h.Params.MemLimit)
			return nil
		},
	}
}
