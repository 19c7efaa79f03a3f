package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Akhil-Baki/ai-study-pilot/config"
	"github.com/Akhil-Baki/ai-study-pilot/internal/model"
	"github.com/Akhil-Baki/ai-study-pilot/pkg/database"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if cfg.Database.Driver == config.DriverMemory {
				logger.Info("memory driver has no schema, nothing to migrate")
				return nil
			}

			db, err := database.NewDB(&cfg.Database, logger)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return fmt.Errorf("get sql.DB: %w", err)
			}
			defer sqlDB.Close()

			if err := database.Migrate(db, cfg.Database.Driver, logger, model.All()...); err != nil {
				return err
			}
			logger.Info("migration finished", zap.String("driver", cfg.Database.Driver))
			return nil
		},
	}
}
