package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/attendance-backend/internal/errs"
	"github.com/GregMSThompson/attendance-backend/internal/models"
	"github.com/GregMSThompson/attendance-backend/internal/worktime"
	"github.com/GregMSThompson/attendance-backend/pkg/clock"
	"github.com/GregMSThompson/attendance-backend/pkg/logger"
)

type attendanceASStore interface {
	Get(ctx context.Context, uid, date string) (*models.AttendanceRecord, error)
	Create(ctx context.Context, rec *models.AttendanceRecord) error
	Save(ctx context.Context, rec *models.AttendanceRecord) error
}

type attendanceService struct {
	store attendanceASStore
	clock clock.Clock
	loc   *time.Location
	newID func() string
}

func NewAttendanceService(store attendanceASStore, clk clock.Clock, loc *time.Location) *attendanceService {
	if loc == nil {
		loc = time.Local
	}
	return &attendanceService{
		store: store,
		clock: clk,
		loc:   loc,
		newID: uuid.NewString,
	}
}

// today reads the clock once; every timestamp written by a call uses it.
func (s *attendanceService) today() (time.Time, string) {
	now := s.clock.Now()
	return now, clock.Date(now, s.loc)
}

func (s *attendanceService) ClockIn(ctx context.Context, uid string) (*models.AttendanceRecord, error) {
	if uid == "" {
		return nil, errs.NewValidationError("uid is required")
	}
	log := logger.FromContext(ctx)
	now, date := s.today()

	rec, err := s.store.Get(ctx, uid, date)
	var notFound *errs.NotFoundError
	switch {
	case errors.As(err, &notFound):
		rec = &models.AttendanceRecord{
			UID:         uid,
			Date:        date,
			LoginTime:   &now,
			LunchBreaks: []models.Break{},
			SnackBreaks: []models.Break{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		worktime.Apply(rec, now)
		if err := s.store.Create(ctx, rec); err != nil {
			return nil, err
		}
		log.Info("clocked in", "uid", uid, "date", date)
		return rec, nil
	case err != nil:
		return nil, err
	}

	rec.LoginTime = &now
	if err := s.save(ctx, rec, now); err != nil {
		return nil, err
	}
	log.Info("clocked in again", "uid", uid, "date", date)
	return rec, nil
}

func (s *attendanceService) ClockOut(ctx context.Context, uid string) (*models.AttendanceRecord, error) {
	return s.update(ctx, uid, "clock-out", func(rec *models.AttendanceRecord, now time.Time) {
		rec.LogoutTime = &now
	})
}

// StartBreak appends an open interval. An already-open break of the same kind
// is left as is, so two open entries can coexist.
func (s *attendanceService) StartBreak(ctx context.Context, uid string, kind models.BreakKind) (*models.AttendanceRecord, error) {
	if err := validateKind(kind); err != nil {
		return nil, err
	}
	return s.update(ctx, uid, "start-"+string(kind)+"-break", func(rec *models.AttendanceRecord, now time.Time) {
		seq := rec.Breaks(kind)
		*seq = append(*seq, models.Break{ID: s.newID(), Start: now})
	})
}

// EndBreak closes the earliest open interval of kind, in insertion order.
// With nothing open the record is saved unchanged.
func (s *attendanceService) EndBreak(ctx context.Context, uid string, kind models.BreakKind) (*models.AttendanceRecord, error) {
	if err := validateKind(kind); err != nil {
		return nil, err
	}
	return s.update(ctx, uid, "end-"+string(kind)+"-break", func(rec *models.AttendanceRecord, now time.Time) {
		seq := *rec.Breaks(kind)
		for i := range seq {
			if seq[i].Open() {
				end := now
				seq[i].End = &end
				return
			}
		}
	})
}

// Today returns the caller's record for the current day, or nil when there is
// none. Totals depend on now while logout is unset, so they are refreshed and
// persisted on every read.
func (s *attendanceService) Today(ctx context.Context, uid string) (*models.AttendanceRecord, error) {
	now, date := s.today()

	rec, err := s.store.Get(ctx, uid, date)
	if err != nil {
		var notFound *errs.NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := s.save(ctx, rec, now); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *attendanceService) update(ctx context.Context, uid, action string, apply func(*models.AttendanceRecord, time.Time)) (*models.AttendanceRecord, error) {
	if uid == "" {
		return nil, errs.NewValidationError("uid is required")
	}
	log := logger.FromContext(ctx)
	now, date := s.today()

	rec, err := s.store.Get(ctx, uid, date)
	if err != nil {
		log.Warn("attendance action rejected", "action", action, "uid", uid, "date", date, "error", err)
		return nil, err
	}

	apply(rec, now)
	if err := s.save(ctx, rec, now); err != nil {
		return nil, err
	}

	log.Info("attendance updated", "action", action, "uid", uid, "date", date, "net_work_time", rec.NetWorkTime)
	return rec, nil
}

func (s *attendanceService) save(ctx context.Context, rec *models.AttendanceRecord, now time.Time) error {
	worktime.Apply(rec, now)
	rec.UpdatedAt = now
	return s.store.Save(ctx, rec)
}

func validateKind(kind models.BreakKind) error {
	switch kind {
	case models.BreakLunch, models.BreakSnack:
		return nil
	default:
		return errs.NewValidationError("unknown break kind")
	}
}
