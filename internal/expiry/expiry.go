// Package expiry scans activities whose deadline has elapsed without full
// completion and raises them for user disposition. The scan is pure except
// for one monotonic side effect: expired activities are appended to the
// pending-verification set so they are reported exactly once. Disposition
// (complete / recalibrate / adjust) is driven by the caller.
package expiry

import (
	"time"

	"github.com/tempo-cli/tempo/internal/models"
	"github.com/tempo-cli/tempo/internal/utils"
)

// Check returns every activity whose deadline date (today + deadline days,
// normalized to midnight) is strictly before now while its completed hours
// fall short of the required timing. Activities already in the pending set
// are skipped; newly expired ones are added to it. Nothing is ever removed
// from the activity list here.
func Check(activities []models.Activity, progress map[string]float64, pending map[string]bool, now time.Time) []models.ExpiredActivity {
	var expired []models.ExpiredActivity

	today := utils.Midnight(now)
	for _, act := range activities {
		deadline := today.AddDate(0, 0, act.DeadlineDays)
		if !deadline.Before(now) {
			continue
		}
		if progress[act.Name] >= act.TimingHours {
			continue // finished before the deadline lapsed
		}
		if pending[act.Name] {
			continue
		}
		pending[act.Name] = true
		expired = append(expired, models.ExpiredActivity{
			Name:           act.Name,
			CompletedHours: progress[act.Name],
			TotalHours:     act.TimingHours,
			DeadlineDays:   act.DeadlineDays,
		})
	}

	return expired
}
