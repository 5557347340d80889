package datastore

import (
	"context"

	"prizewheel/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableConfig(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Config)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}
	return nil
}

// InsertConfigDefaults keeps values an operator already changed.
func InsertConfigDefaults(ctx context.Context, db *bun.DB, configs []models.Config) error {
	if len(configs) == 0 {
		return nil
	}

	_, err := db.NewInsert().Model(&configs).On("CONFLICT (key) DO NOTHING").Exec(ctx)
	if err != nil {
		return err
	}
	return nil
}

func GetConfigByKey(ctx context.Context, db *bun.DB, key string) (*models.Config, error) {
	var config models.Config
	err := db.NewSelect().Model(&config).Where("key = ?", key).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &config, nil
}
