package util

import (
	"fmt"
	"strconv"
	"strings"
)

const referralPrefix = "ref_"

func BuildReferralLink(botUsername string, userId int64) string {
	return fmt.Sprintf("https://t.me/%s?start=%s%d", botUsername, referralPrefix, userId)
}

// ParseReferralPayload extracts the inviter id from a /start deep-link
// payload. Returns false for anything that is not a ref_<id> payload.
func ParseReferralPayload(payload string) (int64, bool) {
	if !strings.HasPrefix(payload, referralPrefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(payload, referralPrefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
