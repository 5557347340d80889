package services

import (
	"fmt"
	"html"
	"strings"
	"time"

	"prizewheel/internal/models"

	tele "gopkg.in/telebot.v3"
)

type Bot struct {
	token string
}

func NewBot(token string) (*Bot, error) {
	return &Bot{token}, nil
}

func (bot *Bot) SendMsg(chatID int64, text string) error {
	pref := tele.Settings{
		Token:   bot.token,
		Offline: true,
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return err
	}

	_, err = b.Send(&tele.Chat{ID: chatID}, text, &tele.SendOptions{
		ParseMode: tele.ModeHTML,
	})
	if err != nil {
		return err
	}

	return nil
}

func (bot *Bot) SendWheelReport(chatID int64, report *models.WheelReport) error {
	return bot.SendMsg(chatID, FormatWheelReport(report))
}

func FormatWheelReport(report *models.WheelReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>🎡 Prize wheel since %s</b>\n", report.Since.Format(time.DateTime))
	fmt.Fprintf(&b, "Spins: %d\nWins: %d\n", report.TotalSpins, report.TotalWins)
	for _, prize := range report.Prizes {
		fmt.Fprintf(&b, "• %s: %d\n", html.EscapeString(prize.PrizeName), prize.Wins)
	}

	return b.String()
}
