package handlers

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/attendance-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	UserSvc         UserService
	AttendanceSvc   attendanceService
	ReportSvc       reportService
	Firebase        *auth.Client // nil when authentication is disabled
	Environment     string
	Version         string
	AllowedOrigins  []string
}
