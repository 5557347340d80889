package datastore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"prizewheel/internal/models"

	"github.com/uptrace/bun"
)

// ErrDrawConflict is returned by InsertDrawRecordIfEligible when the user
// already has a draw whose cooldown has not expired.
var ErrDrawConflict = errors.New("unexpired draw record exists")

func CreateTableDrawRecord(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.DrawRecord)(nil)).IfNotExists().
		ForeignKey(`("prize_id") REFERENCES "prize" ("id") ON DELETE SET NULL`).
		Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.DrawRecord)(nil)).Index("index_draw_record_user_id_drawn_at").IfNotExists().Column("user_id", "drawn_at").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.DrawRecord)(nil)).Index("index_draw_record_drawn_at").IfNotExists().Column("drawn_at").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func GetMostRecentDrawRecord(ctx context.Context, db bun.IDB, userID int64) (*models.DrawRecord, error) {
	var record models.DrawRecord
	err := db.NewSelect().Model(&record).
		Where("user_id = ?", userID).
		Order("drawn_at DESC").
		Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// InsertDrawRecordIfEligible appends the record only when the user has no
// draw with next_eligible_at after record.DrawnAt. The check and the insert
// run in one transaction holding a per-user advisory lock.
func InsertDrawRecordIfEligible(ctx context.Context, db *bun.DB, record *models.DrawRecord) error {
	return db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewRaw("SELECT pg_advisory_xact_lock(?)", record.UserID).Exec(ctx); err != nil {
			return err
		}

		exists, err := tx.NewSelect().Model((*models.DrawRecord)(nil)).
			Where("user_id = ?", record.UserID).
			Where("next_eligible_at > ?", record.DrawnAt).
			Exists(ctx)
		if err != nil {
			return err
		}
		if exists {
			return ErrDrawConflict
		}

		_, err = tx.NewInsert().Model(record).Exec(ctx)
		return err
	})
}

func GetUserDrawRecords(ctx context.Context, db bun.IDB, userID int64, limit int, offset int) ([]models.DrawRecord, error) {
	records := []models.DrawRecord{}
	err := db.NewSelect().Model(&records).
		Relation("Prize").
		Where("draw_record.user_id = ?", userID).
		Order("draw_record.drawn_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func CountUserDrawRecords(ctx context.Context, db bun.IDB, userID int64) (total int, wins int, err error) {
	total, err = db.NewSelect().Model((*models.DrawRecord)(nil)).
		Where("user_id = ?", userID).Count(ctx)
	if err != nil {
		return 0, 0, err
	}

	wins, err = db.NewSelect().Model((*models.DrawRecord)(nil)).
		Where("user_id = ?", userID).
		Where("prize_id IS NOT NULL").Count(ctx)
	if err != nil {
		return 0, 0, err
	}

	return total, wins, nil
}

// wheelReportPrizesQuery counts wins per prize. Prizes sharing a name stay
// separate rows.
func wheelReportPrizesQuery(db bun.IDB, since time.Time) *bun.SelectQuery {
	return db.NewSelect().
		TableExpr("draw_record AS d").
		ColumnExpr("p.id AS prize_id").
		ColumnExpr("p.name AS prize_name").
		ColumnExpr("count(*) AS wins").
		Join("JOIN prize AS p ON p.id = d.prize_id").
		Where("d.drawn_at >= ?", since).
		GroupExpr("p.id, p.name").
		OrderExpr("wins DESC, p.id")
}

func GetWheelReport(ctx context.Context, db bun.IDB, since time.Time) (*models.WheelReport, error) {
	report := &models.WheelReport{Since: since, Prizes: []models.PrizeWinCount{}}

	var err error
	report.TotalSpins, err = db.NewSelect().Model((*models.DrawRecord)(nil)).
		Where("drawn_at >= ?", since).Count(ctx)
	if err != nil {
		return nil, err
	}

	err = wheelReportPrizesQuery(db, since).Scan(ctx, &report.Prizes)
	if err != nil {
		return nil, err
	}

	for _, prize := range report.Prizes {
		report.TotalWins += prize.Wins
	}

	return report, nil
}
