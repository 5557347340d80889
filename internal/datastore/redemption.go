package datastore

import (
	"context"

	"prizewheel/internal/models"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func CreateTablePrizeRedemption(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.PrizeRedemption)(nil)).IfNotExists().
		ForeignKey(`("draw_record_id") REFERENCES "draw_record" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	return err
}

func GetDrawRecord(ctx context.Context, db bun.IDB, id uuid.UUID) (*models.DrawRecord, error) {
	var record models.DrawRecord
	err := db.NewSelect().Model(&record).
		Relation("Prize").
		Where("draw_record.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func GetPrizeRedemption(ctx context.Context, db bun.IDB, drawRecordID uuid.UUID) (*models.PrizeRedemption, error) {
	var redemption models.PrizeRedemption
	err := db.NewSelect().Model(&redemption).
		Where("draw_record_id = ?", drawRecordID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &redemption, nil
}

func UpsertPrizeRedemption(ctx context.Context, db bun.IDB, redemption *models.PrizeRedemption) error {
	_, err := db.NewInsert().Model(redemption).
		On("CONFLICT (draw_record_id) DO UPDATE").
		Set("used = EXCLUDED.used").
		Set("used_at = EXCLUDED.used_at").
		Set("note = EXCLUDED.note").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func CountUserRedemptionsUsed(ctx context.Context, db bun.IDB, userID int64) (int, error) {
	return db.NewSelect().
		TableExpr("prize_redemption AS r").
		Join("JOIN draw_record AS d ON d.id = r.draw_record_id").
		Where("d.user_id = ?", userID).
		Where("r.used").
		Count(ctx)
}

func userSummariesQuery(db bun.IDB, limit int, offset int) *bun.SelectQuery {
	return db.NewSelect().
		TableExpr("draw_record AS d").
		ColumnExpr("d.user_id").
		ColumnExpr("count(*) AS total_spins").
		ColumnExpr("count(d.prize_id) AS total_wins").
		ColumnExpr("count(*) FILTER (WHERE r.used) AS total_used").
		ColumnExpr("max(d.drawn_at) AS last_spin_at").
		Join("LEFT JOIN prize_redemption AS r ON r.draw_record_id = d.id").
		GroupExpr("d.user_id").
		OrderExpr("last_spin_at DESC, d.user_id").
		Limit(limit).
		Offset(offset)
}

// GetUserSummaries lists every user that spun at least once, most recent
// spinner first.
func GetUserSummaries(ctx context.Context, db bun.IDB, limit int, offset int) ([]models.UserSummary, error) {
	users := []models.UserSummary{}
	err := userSummariesQuery(db, limit, offset).Scan(ctx, &users)
	if err != nil {
		return nil, err
	}

	for i := range users {
		users[i].WinRate = models.WinRate(users[i].TotalSpins, users[i].TotalWins)
	}

	return users, nil
}

func CountDrawUsers(ctx context.Context, db bun.IDB) (int, error) {
	var total int
	err := db.NewSelect().Model((*models.DrawRecord)(nil)).
		ColumnExpr("count(DISTINCT user_id)").
		Scan(ctx, &total)
	return total, err
}
