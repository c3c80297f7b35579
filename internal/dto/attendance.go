package dto

import "github.com/GregMSThompson/attendance-backend/internal/models"

type UIDRequest struct {
	UID string `json:"uid"`
}

type RegisterUserRequest struct {
	UID   string      `json:"uid"`
	Email string      `json:"email"`
	Role  models.Role `json:"role,omitempty"`
}

// AttendanceQuery filters attendance records. Empty fields match everything.
type AttendanceQuery struct {
	DateFrom string
	DateTo   string
	UID      string
}

// MonthRange returns the inclusive date-string bounds for a "YYYY-MM" month.
// The upper bound is always day 31; string comparison on zero-padded dates
// does the rest, so short months admit no extra real dates.
func MonthRange(month string) (from, to string) {
	if month == "" {
		return "", ""
	}
	return month + "-01", month + "-31"
}

// NewAttendanceQuery builds a query from the admin filters.
func NewAttendanceQuery(month, employee string) AttendanceQuery {
	from, to := MonthRange(month)
	return AttendanceQuery{DateFrom: from, DateTo: to, UID: employee}
}

// RecordUser is the owning user embedded in admin attendance listings.
type RecordUser struct {
	UID   string      `json:"uid"`
	Email string      `json:"email"`
	Role  models.Role `json:"role,omitempty"`
}

// UnknownUser stands in for a record whose user document is missing.
func UnknownUser(uid string) RecordUser {
	return RecordUser{UID: uid, Email: "Unknown"}
}

type AttendanceWithUser struct {
	models.AttendanceRecord
	User RecordUser `json:"user"`
}

type AttendanceStatistics struct {
	TotalEmployees int     `json:"totalEmployees"`
	TotalRecords   int     `json:"totalRecords"`
	TotalWorkTime  int     `json:"totalWorkTime"`
	TotalBreakTime int     `json:"totalBreakTime"`
	AvgWorkTime    float64 `json:"avgWorkTime"`
}
