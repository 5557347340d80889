package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"

	"prizewheel/internal/datastore"
	"prizewheel/internal/models"
	"prizewheel/internal/services"

	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

var defaultPrizes = []models.Prize{
	{Name: "Free carpet cleaning", Description: "One carpet up to 6 m²", Weight: 5, Slot: 1, Color: "#e74c3c", Active: true},
	{Name: "20% discount", Description: "On the next order", Weight: 15, Slot: 3, Color: "#f1c40f", Active: true},
	{Name: "10% discount", Description: "On the next order", Weight: 25, Slot: 5, Color: "#2ecc71", Active: true},
	{Name: "Free delivery", Description: "Pickup and delivery", Weight: 20, Slot: 7, Color: "#3498db", Active: true},
}

var defaultConfigs = []models.Config{
	{Key: services.CONFIG_WHEEL_SPIN_RATE_LIMIT_PER_MINUTE, Value: strconv.Itoa(services.DEFAULT_WHEEL_SPIN_RATE_LIMIT_PER_MINUTE), Description: "spin requests per user per minute"},
	{Key: services.CONFIG_CRONJOB_TIME_WHEEL_REPORT, Value: services.DEFAULT_CRONJOB_TIME_WHEEL_REPORT, Description: "cron spec of the operator report"},
}

func main() {
	app := &cli.App{
		Name: "migrate",
		Commands: []*cli.Command{
			commandMigration(),
			commandSeed(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandMigration() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "create tables and indexes",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				return err
			}

			err = datastore.CreateTableConfig(ctx, db)
			if err != nil {
				return err
			}

			err = datastore.CreateTablePrize(ctx, db)
			if err != nil {
				return err
			}

			err = datastore.CreateTableDrawRecord(ctx, db)
			if err != nil {
				return err
			}

			err = datastore.CreateTablePrizeRedemption(ctx, db)
			if err != nil {
				return err
			}

			log.Println("migrated")
			return nil
		},
	}
}

func commandSeed() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "insert default config values and, on an empty catalog, default prizes",
		Action: func(c *cli.Context) error {
			ctx := context.Background()
			db, err := getDb()
			if err != nil {
				return err
			}

			err = datastore.InsertConfigDefaults(ctx, db, defaultConfigs)
			if err != nil {
				return err
			}

			n, err := datastore.InsertPrizesIfEmpty(ctx, db, defaultPrizes)
			if err != nil {
				return err
			}

			log.Println("seeded prizes:", n)
			return nil
		},
	}
}

func getDb() (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	db := bun.NewDB(sqldb, pgdialect.New())
	return db, nil
}
