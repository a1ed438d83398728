package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <backup-file>",
		Short: "Check that a backup file belongs to the current account",
		Long: "Check that a backup file belongs to the current account. " +
			"No password is needed; the account is taken from the local session or --user-id.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := rt.openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			sess, err := rt.session(ctx, db)
			if err != nil {
				return err
			}

			if err := rt.engine().VerifyAccount(ctx, args[0], sess.UserID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "backup belongs to account %s\n", sess.UserID)
			return nil
		},
	}
}
