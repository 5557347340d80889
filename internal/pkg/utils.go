package pkg

import (
	"fmt"
	"math/rand"
)

// GenSlot returns a random slot in [min, max].
func GenSlot(rs *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}

	return rs.Intn(max-min+1) + min
}

// FormatCountdown renders seconds as HH:MM:SS. Hours are not wrapped at 24.
func FormatCountdown(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}

	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
