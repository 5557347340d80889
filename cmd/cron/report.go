package main

import (
	"context"
	"time"

	"prizewheel/internal/datastore"
	"prizewheel/internal/pkg/sl"
	"prizewheel/internal/services"

	"github.com/robfig/cron/v3"
	"github.com/uptrace/bun"
	"golang.org/x/exp/slog"
)

const reportWindow = 24 * time.Hour

type WheelReportJob struct {
	Db     *bun.DB
	Bot    *services.Bot
	ChatID int64
	Log    *slog.Logger
}

func NewWheelReportJob(db *bun.DB, bot *services.Bot, chatID int64, logger *slog.Logger) *WheelReportJob {
	return &WheelReportJob{
		Db:     db,
		Bot:    bot,
		ChatID: chatID,
		Log:    logger,
	}
}

func (j *WheelReportJob) Start(cronRunner *cron.Cron) error {
	spec := services.DEFAULT_CRONJOB_TIME_WHEEL_REPORT
	timeline, err := datastore.GetConfigByKey(context.Background(), j.Db, services.CONFIG_CRONJOB_TIME_WHEEL_REPORT)
	if err != nil {
		j.Log.Warn("report schedule not configured, using default", slog.String("cron", spec), sl.Err(err))
	} else if timeline.Value != "" {
		spec = timeline.Value
	}

	_, err = cronRunner.AddFunc(spec, j.runScheduledTask)
	if err != nil {
		return err
	}

	j.Log.Info("wheel report cronjob scheduled", slog.String("cron", spec))
	return nil
}

func (j *WheelReportJob) runScheduledTask() {
	if err := j.send(); err != nil {
		j.Log.Error("wheel report", sl.Err(err))
	}
}

func (j *WheelReportJob) send() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	report, err := datastore.GetWheelReport(ctx, j.Db, time.Now().Add(-reportWindow))
	if err != nil {
		return err
	}

	if err := j.Bot.SendWheelReport(j.ChatID, report); err != nil {
		return err
	}

	j.Log.Info("wheel report sent", slog.Int("spins", report.TotalSpins), slog.Int("wins", report.TotalWins))
	return nil
}
