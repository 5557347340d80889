package services

import (
	"fmt"
	"time"
)

const (
	CONFIG_WHEEL_SPIN_RATE_LIMIT_PER_MINUTE = "WHEEL_SPIN_RATE_LIMIT_PER_MINUTE"
	CONFIG_CRONJOB_TIME_WHEEL_REPORT        = "CRONJOB_TIME_WHEEL_REPORT"

	DEFAULT_WHEEL_SPIN_RATE_LIMIT_PER_MINUTE = 10
	DEFAULT_CRONJOB_TIME_WHEEL_REPORT        = "0 9 * * *"
	DEFAULT_HISTORY_LIMIT                    = 20
	MAX_HISTORY_LIMIT                        = 100
	DEFAULT_REPORT_HOURS                     = 24
	MAX_REPORT_HOURS                         = 24 * 366

	DRAW_COOLDOWN = 24 * time.Hour

	LOCK_EXPIRY_DRAW    = 10 * time.Second
	LOCK_EXPIRY_CATALOG = 10 * time.Second

	CACHE_TTL_1_MIN  = 1 * time.Minute
	CACHE_TTL_5_MINS = 5 * time.Minute
)

func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", key)
}

func DBKeyActivePrizes() string {
	return "wheel:prizes:active"
}

func LockKeyUserDraw(userID int64) string {
	return fmt.Sprintf("lock:wheel:draw:%d", userID)
}

func LockKeyPrizeCatalog() string {
	return "lock:wheel:catalog"
}

func LimitKeyUserSpin(userID int64) string {
	return fmt.Sprintf("limit:wheel:spin:%d", userID)
}
