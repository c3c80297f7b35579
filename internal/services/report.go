package services

import (
	"context"
	"sort"

	"github.com/GregMSThompson/attendance-backend/internal/dto"
	"github.com/GregMSThompson/attendance-backend/internal/models"
	"github.com/GregMSThompson/attendance-backend/pkg/logger"
)

type attendanceReportStore interface {
	Query(ctx context.Context, q dto.AttendanceQuery, handle func(*models.AttendanceRecord) error) error
}

type userReportStore interface {
	GetUsers(ctx context.Context, uids []string) (map[string]*models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]*models.User, error)
}

type reportService struct {
	attendance attendanceReportStore
	users      userReportStore
}

func NewReportService(attendance attendanceReportStore, users userReportStore) *reportService {
	return &reportService{
		attendance: attendance,
		users:      users,
	}
}

// ListAttendance returns records matching the optional month ("YYYY-MM") and
// employee uid filters, newest date first, each joined with its user.
func (s *reportService) ListAttendance(ctx context.Context, month, employee string) ([]dto.AttendanceWithUser, error) {
	var records []*models.AttendanceRecord
	err := s.attendance.Query(ctx, dto.NewAttendanceQuery(month, employee), func(rec *models.AttendanceRecord) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})

	uids := make([]string, 0, len(records))
	for _, rec := range records {
		uids = append(uids, rec.UID)
	}
	users, err := s.users.GetUsers(ctx, uids)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AttendanceWithUser, 0, len(records))
	for _, rec := range records {
		owner := dto.UnknownUser(rec.UID)
		if u, ok := users[rec.UID]; ok {
			owner = dto.RecordUser{UID: u.UID, Email: u.Email, Role: u.Role}
		}
		out = append(out, dto.AttendanceWithUser{AttendanceRecord: *rec, User: owner})
	}

	logger.FromContext(ctx).Debug("attendance listed", "month", month, "employee", employee, "count", len(out))
	return out, nil
}

// Statistics aggregates the stored totals of matching records. No matches is
// all zeros, not an error.
func (s *reportService) Statistics(ctx context.Context, month string) (dto.AttendanceStatistics, error) {
	var stats dto.AttendanceStatistics

	employees, err := s.users.ListByRole(ctx, models.RoleEmployee)
	if err != nil {
		return stats, err
	}
	stats.TotalEmployees = len(employees)

	var net int
	err = s.attendance.Query(ctx, dto.NewAttendanceQuery(month, ""), func(rec *models.AttendanceRecord) error {
		stats.TotalRecords++
		stats.TotalWorkTime += rec.TotalWorkTime
		stats.TotalBreakTime += rec.TotalBreakTime
		net += rec.NetWorkTime
		return nil
	})
	if err != nil {
		return dto.AttendanceStatistics{}, err
	}
	if stats.TotalRecords > 0 {
		stats.AvgWorkTime = float64(net) / float64(stats.TotalRecords)
	}
	return stats, nil
}
