package cli

import (
	"io"

	"github.com/dmitrijs2005/keeperbackup/internal/client/config"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree. in supplies passwords read with
// --password-stdin; out receives results and errOut receives logs.
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "keeperbackup",
		Short:         "Encrypted backup and restore of the local keeper vault",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newCreateCommand(),
		newRestoreCommand(),
		newInspectCommand(),
		newVerifyCommand(),
	)
	return cmd
}
