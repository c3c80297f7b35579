// Package worktime derives the minute totals stored on an attendance record
// from its login/logout instants and break intervals.
package worktime

import (
	"math"
	"time"

	"github.com/GregMSThompson/attendance-backend/internal/models"
	"github.com/GregMSThompson/attendance-backend/pkg/helpers"
)

type Totals struct {
	Work  int
	Break int
	Net   int
}

// Compute returns floored whole minutes. A missing logout counts as still
// clocked in until now. Open breaks contribute nothing. Net is not clamped and
// goes negative when closed breaks outlast the worked span.
func Compute(login, logout *time.Time, now time.Time, breaks ...[]models.Break) Totals {
	var t Totals
	if login != nil {
		t.Work = Minutes(*login, helpers.ValueOr(logout, now))
	}
	for _, seq := range breaks {
		for _, b := range seq {
			if b.End == nil {
				continue
			}
			t.Break += Minutes(b.Start, *b.End)
		}
	}
	t.Net = t.Work - t.Break
	return t
}

// Apply recomputes and stores the totals on rec.
func Apply(rec *models.AttendanceRecord, now time.Time) Totals {
	t := Compute(rec.LoginTime, rec.LogoutTime, now, rec.LunchBreaks, rec.SnackBreaks)
	rec.TotalWorkTime = t.Work
	rec.TotalBreakTime = t.Break
	rec.NetWorkTime = t.Net
	return t
}

// Minutes floors (end - start) to whole minutes, rounding toward negative
// infinity when end precedes start.
func Minutes(start, end time.Time) int {
	return int(math.Floor(end.Sub(start).Minutes()))
}
