package screener

import (
	"fmt"
	"time"

	"ccscreen/internal/models"
)

// EvaluateExpiration decides whether an expiration date falls inside
// the configured screening window. deltaDays is measured against the
// run's fixed "now", captured once at pipeline start.
//
// The minimum-lead-time rule is relaxed in the sandbox environment:
// sandbox endpoints serve static, often stale dates, and a strict
// lower bound would filter out everything. The maximum is enforced in
// both environments. A non-empty reason can accompany a passing date
// (sandbox letting a too-soon date through); it is for logging only.
func EvaluateExpiration(expiration, now time.Time, cfg Thresholds) (bool, string) {
	deltaDays := DaysToExpire(now, expiration)

	if deltaDays < cfg.MinDays {
		reason := fmt.Sprintf("too soon (min_days=%d days, delta=%d)", cfg.MinDays, deltaDays)
		if cfg.Environment == models.EnvLive {
			return false, reason
		}
		if deltaDays <= cfg.MaxDays {
			return true, reason
		}
	}

	if deltaDays > cfg.MaxDays {
		return false, fmt.Sprintf("too far away (max_days=%d days, delta=%d)", cfg.MaxDays, deltaDays)
	}
	return true, ""
}
