package models

import (
	"time"
)

// Break is one lunch or snack interval. End is nil while the break is open.
type Break struct {
	ID    string     `firestore:"id" json:"id"`
	Start time.Time  `firestore:"start" json:"start"`
	End   *time.Time `firestore:"end" json:"end,omitempty"`
}

func (b Break) Open() bool { return b.End == nil }

// AttendanceRecord is a user's single record for one calendar day.
// The three total fields are derived minutes, rewritten on every save.
type AttendanceRecord struct {
	UID            string     `firestore:"uid" json:"uid"`
	Date           string     `firestore:"date" json:"date"` // YYYY-MM-DD
	LoginTime      *time.Time `firestore:"loginTime" json:"loginTime,omitempty"`
	LogoutTime     *time.Time `firestore:"logoutTime" json:"logoutTime,omitempty"`
	LunchBreaks    []Break    `firestore:"lunchBreaks" json:"lunchBreaks"`
	SnackBreaks    []Break    `firestore:"snackBreaks" json:"snackBreaks"`
	TotalWorkTime  int        `firestore:"totalWorkTime" json:"totalWorkTime"`
	TotalBreakTime int        `firestore:"totalBreakTime" json:"totalBreakTime"`
	NetWorkTime    int        `firestore:"netWorkTime" json:"netWorkTime"`
	CreatedAt      time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time  `firestore:"updatedAt" json:"updatedAt"`
}

type BreakKind string

const (
	BreakLunch BreakKind = "lunch"
	BreakSnack BreakKind = "snack"
)

// Breaks returns a pointer to the sequence for kind, or nil for an unknown kind.
func (a *AttendanceRecord) Breaks(kind BreakKind) *[]Break {
	switch kind {
	case BreakLunch:
		return &a.LunchBreaks
	case BreakSnack:
		return &a.SnackBreaks
	default:
		return nil
	}
}
