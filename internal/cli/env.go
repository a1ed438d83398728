package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/keeperbackup/internal/client/config"
	"github.com/dmitrijs2005/keeperbackup/internal/client/localdb"
	"github.com/dmitrijs2005/keeperbackup/internal/client/models"
	"github.com/dmitrijs2005/keeperbackup/internal/client/services"
	"github.com/dmitrijs2005/keeperbackup/internal/cryptox"
	"github.com/dmitrijs2005/keeperbackup/internal/dbx"
	"github.com/dmitrijs2005/keeperbackup/internal/logging"
	"github.com/spf13/cobra"
)

// runtime is what every command needs once flags are parsed.
type runtime struct {
	cfg *config.Config
	log logging.Logger
}

func newRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, usageErrorf("%v", err)
	}

	log, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return nil, usageErrorf("%v", err)
	}

	return &runtime{cfg: cfg, log: log.With("cmd", cmd.Name())}, nil
}

func (r *runtime) openDB(ctx context.Context) (*dbx.DB, error) {
	db, err := localdb.Open(ctx, r.cfg.DBDriver, r.cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("open local database: %w", err)
	}
	return db, nil
}

func (r *runtime) session(ctx context.Context, db dbx.DBTX) (models.Session, error) {
	return services.NewSessionService(db).Current(ctx, models.Session{
		UserID:   r.cfg.UserID,
		ClientID: r.cfg.ClientID,
		Username: r.cfg.Username,
	})
}

func (r *runtime) engine() *cryptox.Engine {
	return cryptox.NewEngine(r.log, cryptox.WithParams(cryptox.Params{
		OpsLimit: r.cfg.KDFOpsLimit,
		MemLimit: r.cfg.KDFMemLimit,
	}))
}
