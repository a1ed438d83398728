package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/awnumar/memguard"
	"github.com/dmitrijs2005/keeperbackup/internal/backup"
	"github.com/spf13/cobra"
)

const (
	flagOutput        = "output"
	flagKeepScratch   = "keep-scratch"
	flagPasswordStdin = "password-stdin"
)

func newCreateCommand() *cobra.Command {
	var (
		output        string
		keepScratch   bool
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Write an encrypted backup of the local vault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				return usageErrorf("--%s is required", flagOutput)
			}

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

			pw, err := getPassword(cmd, passwordStdin, true)
			if err != nil {
				return err
			}
			defer memguard.WipeBytes(pw)

			svc := backup.NewService(backup.LocalTables(db), rt.engine(), rt.log, rt.cfg.PageSize)
			task, err := svc.CreateAsync(ctx, backup.CreateRequest{
				Session:     sess,
				Password:    pw,
				ScratchRoot: rt.cfg.ScratchDir,
				Output:      output,
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
				fmt.Fprintf(out, "%-10s %6d rows in %d pages\n", t.Table, t.Rows, len(t.Files))
			}
			fmt.Fprintf(out, "backup written to %s\n", res.Artifact)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, flagOutput, "o", "", "path of the backup file to create")
	cmd.Flags().BoolVar(&keepScratch, flagKeepScratch, false, "keep the intermediate files")
	cmd.Flags().BoolVar(&passwordStdin, flagPasswordStdin, false, "read the password from stdin")
	return cmd
}

func cleanup(ctx context.Context, rt *runtime, dir string) {
	if dir == "" {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		rt.log.Warn(ctx, "remove scratch directory", "dir", dir, "error", err)
	}
}
