package testutil

import (
	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/husky-nft/nftgate/orm"
	"github.com/husky-nft/nftgate/orm/config"
)

// NewMockDB returns a Database backed by sqlmock with the given batch size.
func NewMockDB(batchSize int) (*orm.Database, sqlmock.Sqlmock, error) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		return nil, nil, err
	}

	gormcfg := &gorm.Config{
		NamingStrategy:         schema.NamingStrategy{SingularTable: true},
		PrepareStmt:            false,
		SkipDefaultTransaction: true,
		CreateBatchSize:        batchSize,
		Logger:                 logger.Discard,
	}

	instance, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), gormcfg)
	if err != nil {
		return nil, nil, err
	}

	db, err := orm.Wrap(instance, &config.Config{BatchSize: batchSize})
	if err != nil {
		return nil, nil, err
	}
	return db, mock, nil
}
