package cli

import (
	"fmt"

	"github.com/awnumar/memguard"
	"github.com/dmitrijs2005/keeperbackup/internal/backup"
	"github.com/spf13/cobra"
)

func newRestoreCommand() *cobra.Command {
	var (
		keepScratch   bool
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "Restore the local vault from an encrypted backup",
		Args:  cobra.ExactArgs(1),
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

			pw, err := getPassword(cmd, passwordStdin, false)
			if err != nil {
				return err
			}
			defer memguard.WipeBytes(pw)

			svc := backup.NewService(backup.LocalTables(db), rt.engine(), rt.log, rt.cfg.PageSize)
			task, err := svc.RestoreAsync(ctx, backup.RestoreRequest{
				UserID:      sess.UserID,
				Password:    pw,
				Artifact:    args[0],
				ScratchRoot: rt.cfg.ScratchDir,
			})
			if err != nil {
				return err
			}

			res, err := task.Wait()
			if res != nil && !keepScratch {
				cleanup(ctx, rt, res.WorkDir)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, t := range res.Tables {
				fmt.Fprintf(out, "%-10s %6d rows restored\n", t.Table, t.Rows)
			}
			fmt.Fprintf(out, "restored backup of %s (client %s)\n", res.Metadata.UserHandle, res.Metadata.ClientID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepScratch, flagKeepScratch, false, "keep the intermediate files")
	cmd.Flags().BoolVar(&passwordStdin, flagPasswordStdin, false, "read the password from stdin")
	return cmd
}
