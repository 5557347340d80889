package datastore

import (
	"context"

	"prizewheel/internal/models"

	"github.com/uptrace/bun"
)

func CreateTablePrize(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Prize)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Prize)(nil)).Index("index_prize_active_slot").IfNotExists().Column("active", "slot").Exec(ctx)
	if err != nil {
		return err
	}

	// one active prize per slot
	_, err = db.NewRaw(`
		create unique index if not exists "index_prize_unique_active_slot"
			on "prize" (slot) where active;`).Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetActivePrizes(ctx context.Context, db bun.IDB) ([]models.Prize, error) {
	prizes := []models.Prize{}
	err := db.NewSelect().Model(&prizes).
		Where("active = ?", true).
		Order("slot ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return prizes, nil
}

func GetPrize(ctx context.Context, db bun.IDB, id int64) (*models.Prize, error) {
	var prize models.Prize
	err := db.NewSelect().Model(&prize).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &prize, nil
}

func InsertPrize(ctx context.Context, db bun.IDB, prize *models.Prize) error {
	_, err := db.NewInsert().Model(prize).Returning("*").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertPrizesIfEmpty(ctx context.Context, db *bun.DB, prizes []models.Prize) (int, error) {
	count, err := db.NewSelect().Model((*models.Prize)(nil)).Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 || len(prizes) == 0 {
		return 0, nil
	}

	_, err = db.NewInsert().Model(&prizes).Exec(ctx)
	if err != nil {
		return 0, err
	}

	return len(prizes), nil
}

func SetPrizeActive(ctx context.Context, db bun.IDB, id int64, active bool) error {
	_, err := db.NewUpdate().Model((*models.Prize)(nil)).
		Set("active = ?", active).
		Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func DeletePrize(ctx context.Context, db bun.IDB, id int64) (bool, error) {
	res, err := db.NewDelete().Model((*models.Prize)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}
