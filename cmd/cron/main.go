package main

import (
	"database/sql"
	"log"
	"os"
	"strconv"

	"prizewheel/internal/pkg/sl"
	"prizewheel/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/env"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
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

func main() {
	app := &cli.App{
		Name: "cronjob",
		Commands: []*cli.Command{
			commandReport(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandReport() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "send the daily prize wheel report to the operator chat",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "now",
				Usage: "send one report immediately and exit",
			},
		},
		Action: func(c *cli.Context) error {
			vs, err := env.EnvsRequired("DB_DSN", "BOT_TOKEN", "REPORT_CHAT_ID")
			if err != nil {
				return err
			}

			chatID, err := strconv.ParseInt(vs["REPORT_CHAT_ID"], 10, 64)
			if err != nil {
				return err
			}

			bot, err := services.NewBot(vs["BOT_TOKEN"])
			if err != nil {
				return err
			}

			job := NewWheelReportJob(getDb(), bot, chatID, sl.New(os.Getenv("API_MODE")))
			if c.Bool("now") {
				return job.send()
			}

			cronRunner := cron.New()
			if err := job.Start(cronRunner); err != nil {
				return err
			}

			log.Println("Start cronjob")
			cronRunner.Run()
			return nil
		},
	}
}

func getDb() *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	return bun.NewDB(sqldb, pgdialect.New())
}
