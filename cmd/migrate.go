package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/husky-nft/nftgate/config"
	"github.com/husky-nft/nftgate/log"
	"github.com/husky-nft/nftgate/orm"
	"github.com/husky-nft/nftgate/types"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the snapshot tables",
		Long: `
Create or update the snapshot tables.

This command applies the gorm schema of the snapshot store regardless of DB_AUTO_MIGRATE.

You can configure database options via environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.GetConfig()
			if err != nil {
				return err
			}
			if !cfg.DBEnabled() {
				return types.NewConfigError("migrate requires DB_DSN", nil)
			}

			dbCfg := *cfg.GetDBConfig()
			dbCfg.AutoMigrate = true

			db, err := orm.OpenDB(&dbCfg, log.NewLogger(cfg))
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck

			if err := db.Migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "snapshot tables are up to date")
			return nil
		},
	}

	return cmd
}
