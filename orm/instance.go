package orm

import (
	"context"
	"database/sql"
	"log/slog"

	sloggorm "github.com/orandin/slog-gorm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"github.com/husky-nft/nftgate/orm/config"
	"github.com/husky-nft/nftgate/orm/plugins"
	"github.com/husky-nft/nftgate/types"
)

var (
	UpdateAllWhenConflict = clause.OnConflict{
		UpdateAll: true,
	}
	DoNothingWhenConflict = clause.OnConflict{
		DoNothing: true,
	}
)

type Database struct {
	*gorm.DB
	config *config.Config
}

func OpenDB(cfg *config.Config, logger *slog.Logger) (*Database, error) {
	gormcfg := &gorm.Config{
		NamingStrategy:  schema.NamingStrategy{SingularTable: true},
		PrepareStmt:     true,
		CreateBatchSize: cfg.BatchSize,
		Logger:          sloggorm.New(sloggorm.WithHandler(logger.Handler())),
	}

	instance, err := gorm.Open(postgres.Open(cfg.DSN), gormcfg)
	if err != nil {
		return nil, types.NewDatabaseError("open", err)
	}

	sqlDB, err := instance.DB()
	if err != nil {
		return nil, types.NewDatabaseError("open", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.IdleConns)

	return Wrap(instance, cfg)
}

// Wrap attaches the metrics plugin to an already opened gorm instance.
func Wrap(instance *gorm.DB, cfg *config.Config) (*Database, error) {
	if err := instance.Use(plugins.NewMetricsPlugin()); err != nil {
		return nil, types.NewDatabaseError("register metrics plugin", err)
	}
	return &Database{DB: instance, config: cfg}, nil
}

// Migrate creates or updates the snapshot tables when DB_AUTO_MIGRATE is set.
func (d Database) Migrate(ctx context.Context) error {
	if d.config == nil || !d.config.AutoMigrate {
		return nil
	}

	models := make([]interface{}, 0, len(types.Tables))
	for _, t := range types.Tables {
		models = append(models, t.Model)
	}
	if err := d.WithContext(ctx).AutoMigrate(models...); err != nil {
		return types.NewDatabaseError("migrate", err)
	}
	return nil
}

func (d Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d Database) GetBatchSize() int {
	if d.config == nil || d.config.BatchSize < 1 {
		return 100
	}
	return d.config.BatchSize
}

// GetDBStats returns database connection pool statistics
func (d Database) GetDBStats() (*sql.DBStats, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return nil, err
	}

	stats := sqlDB.Stats()
	return &stats, nil
}
