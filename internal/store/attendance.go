package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/attendance-backend/internal/dto"
	"github.com/GregMSThompson/attendance-backend/internal/errs"
	"github.com/GregMSThompson/attendance-backend/internal/models"
)

type attendanceStore struct {
	client *firestore.Client
}

func NewAttendanceStore(client *firestore.Client) *attendanceStore {
	return &attendanceStore{client: client}
}

func (s *attendanceStore) collection() *firestore.CollectionRef {
	return s.client.Collection("attendance")
}

// doc addresses the single record for (uid, date). Keying on both makes
// Create the uniqueness check for a user's day.
func (s *attendanceStore) doc(uid, date string) *firestore.DocumentRef {
	return s.collection().Doc(uid + "_" + date)
}

func (s *attendanceStore) Get(ctx context.Context, uid, date string) (*models.AttendanceRecord, error) {
	doc, err := s.doc(uid, date).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("No attendance record found for today")
		}
		return nil, errs.NewDatabaseError("read", "failed to get attendance", err)
	}
	return decodeAttendance(doc)
}

func (s *attendanceStore) Create(ctx context.Context, rec *models.AttendanceRecord) error {
	now := time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = now
	}
	_, err := s.doc(rec.UID, rec.Date).Create(ctx, rec)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errs.NewAlreadyExistsError("attendance record already exists for this day")
		}
		return errs.NewDatabaseError("create", "failed to create attendance", err)
	}
	return nil
}

// Save overwrites the whole record. Concurrent saves are last-writer-wins.
func (s *attendanceStore) Save(ctx context.Context, rec *models.AttendanceRecord) error {
	_, err := s.doc(rec.UID, rec.Date).Set(ctx, rec)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to save attendance", err)
	}
	return nil
}

// Query streams matching records to handle, newest date first. Filtering by
// uid and a date range together needs a composite index on (uid, date desc).
func (s *attendanceStore) Query(ctx context.Context, q dto.AttendanceQuery, handle func(*models.AttendanceRecord) error) error {
	query := s.collection().Query
	if q.UID != "" {
		query = query.Where("uid", "==", q.UID)
	}
	if q.DateFrom != "" {
		query = query.Where("date", ">=", q.DateFrom)
	}
	if q.DateTo != "" {
		query = query.Where("date", "<=", q.DateTo)
	}
	query = query.OrderBy("date", firestore.Desc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return errs.NewDatabaseError("read", "failed to query attendance", err)
		}
		rec, err := decodeAttendance(doc)
		if err != nil {
			return err
		}
		if err := handle(rec); err != nil {
			return err
		}
	}
}

func decodeAttendance(doc *firestore.DocumentSnapshot) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	if err := doc.DataTo(&rec); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse attendance data", err)
	}
	if rec.LunchBreaks == nil {
		rec.LunchBreaks = []models.Break{}
	}
	if rec.SnackBreaks == nil {
		rec.SnackBreaks = []models.Break{}
	}
	return &rec, nil
}
