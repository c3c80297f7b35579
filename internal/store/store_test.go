package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/attendance-backend/internal/dto"
	"github.com/GregMSThompson/attendance-backend/internal/errs"
	"github.com/GregMSThompson/attendance-backend/internal/models"
	"github.com/GregMSThompson/attendance-backend/pkg/helpers"
)

func emulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	client, err := firestore.NewClient(context.Background(), "test-project")
	if err != nil {
		t.Fatalf("firestore client error: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

// uniqueID keeps runs against a shared emulator from colliding.
func uniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func TestAttendanceCreateIsUniquePerUserDay(t *testing.T) {
	client := emulatorClient(t)
	ctx := context.Background()
	s := NewAttendanceStore(client)
	uid := uniqueID("uid")

	first := &models.AttendanceRecord{UID: uid, Date: "2025-01-15", LoginTime: helpers.Ptr(time.Now())}
	if err := s.Create(ctx, first); err != nil {
		t.Fatalf("first create error: %v", err)
	}

	second := &models.AttendanceRecord{UID: uid, Date: "2025-01-15"}
	err := s.Create(ctx, second)
	var exists *errs.AlreadyExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("second create error = %v, want AlreadyExistsError", err)
	}

	other := &models.AttendanceRecord{UID: uid, Date: "2025-01-16"}
	if err := s.Create(ctx, other); err != nil {
		t.Fatalf("create for another day error: %v", err)
	}
}

func TestAttendanceSaveAndGetRoundTripsBreaks(t *testing.T) {
	client := emulatorClient(t)
	ctx := context.Background()
	s := NewAttendanceStore(client)
	uid := uniqueID("uid")
	start := time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

	rec := &models.AttendanceRecord{UID: uid, Date: "2025-01-15", LunchBreaks: []models.Break{}, SnackBreaks: []models.Break{}}
	if err := s.Create(ctx, rec); err != nil {
		t.Fatalf("create error: %v", err)
	}
	rec.LunchBreaks = append(rec.LunchBreaks, models.Break{ID: "b1", Start: start})
	rec.TotalBreakTime = 0
	if err := s.Save(ctx, rec); err != nil {
		t.Fatalf("save error: %v", err)
	}

	got, err := s.Get(ctx, uid, "2025-01-15")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if len(got.LunchBreaks) != 1 || !got.LunchBreaks[0].Open() {
		t.Fatalf("unexpected lunch breaks: %+v", got.LunchBreaks)
	}
	if got.SnackBreaks == nil {
		t.Fatal("snack breaks should decode as an empty slice")
	}
}

func TestAttendanceGetMissing(t *testing.T) {
	client := emulatorClient(t)
	s := NewAttendanceStore(client)

	_, err := s.Get(context.Background(), uniqueID("nobody"), "2025-01-15")
	var notFound *errs.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("get error = %v, want NotFoundError", err)
	}
}

func TestAttendanceQueryFiltersAndOrders(t *testing.T) {
	client := emulatorClient(t)
	ctx := context.Background()
	s := NewAttendanceStore(client)
	uid := uniqueID("uid")

	for _, date := range []string{"2025-01-10", "2025-01-31", "2025-02-01", "2024-12-31"} {
		if err := s.Create(ctx, &models.AttendanceRecord{UID: uid, Date: date}); err != nil {
			t.Fatalf("seed %s error: %v", date, err)
		}
	}

	var dates []string
	err := s.Query(ctx, dto.NewAttendanceQuery("2025-01", uid), func(rec *models.AttendanceRecord) error {
		dates = append(dates, rec.Date)
		return nil
	})
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	if len(dates) != 2 || dates[0] != "2025-01-31" || dates[1] != "2025-01-10" {
		t.Fatalf("unexpected dates: %v", dates)
	}
}

func TestUserCreateRejectsDuplicates(t *testing.T) {
	client := emulatorClient(t)
	ctx := context.Background()
	s := NewUserStore(client)
	uid := uniqueID("uid")
	email := uid + "@example.com"

	first := &models.User{UID: uid, Email: email, Role: models.RoleEmployee, CreatedAt: time.Now()}
	if err := s.CreateUser(ctx, first); err != nil {
		t.Fatalf("create error: %v", err)
	}

	var exists *errs.AlreadyExistsError
	err := s.CreateUser(ctx, &models.User{UID: uid, Email: "other-" + email, Role: models.RoleAdmin})
	if !errors.As(err, &exists) {
		t.Fatalf("duplicate uid error = %v, want AlreadyExistsError", err)
	}
	err = s.CreateUser(ctx, &models.User{UID: uniqueID("uid2"), Email: email})
	if !errors.As(err, &exists) {
		t.Fatalf("duplicate email error = %v, want AlreadyExistsError", err)
	}

	got, err := s.GetUser(ctx, uid)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if got.Role != models.RoleEmployee || got.Email != email {
		t.Fatalf("first user was altered: %+v", got)
	}
}

func TestUserGetUsersSkipsMissing(t *testing.T) {
	client := emulatorClient(t)
	ctx := context.Background()
	s := NewUserStore(client)
	uid := uniqueID("uid")

	if err := s.CreateUser(ctx, &models.User{UID: uid, Email: uid + "@example.com", Role: models.RoleEmployee}); err != nil {
		t.Fatalf("create error: %v", err)
	}

	users, err := s.GetUsers(ctx, []string{uid, uniqueID("ghost"), uid})
	if err != nil {
		t.Fatalf("GetUsers error: %v", err)
	}
	if len(users) != 1 || users[uid] == nil {
		t.Fatalf("unexpected users: %v", users)
	}
}

func TestUserSetRole(t *testing.T) {
	client := emulatorClient(t)
	ctx := context.Background()
	s := NewUserStore(client)
	uid := uniqueID("uid")

	if err := s.CreateUser(ctx, &models.User{UID: uid, Email: uid + "@example.com", Role: models.RoleEmployee}); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if err := s.SetRole(ctx, uid, models.RoleAdmin); err != nil {
		t.Fatalf("SetRole error: %v", err)
	}
	got, err := s.GetUser(ctx, uid)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if got.Role != models.RoleAdmin {
		t.Fatalf("role = %s, want admin", got.Role)
	}

	var notFound *errs.NotFoundError
	if err := s.SetRole(ctx, uniqueID("ghost"), models.RoleAdmin); !errors.As(err, &notFound) {
		t.Fatalf("SetRole on missing user error = %v, want NotFoundError", err)
	}
}

func TestEmailKey(t *testing.T) {
	if got := emailKey("  Jane@Example.COM "); got != "jane@example.com" {
		t.Fatalf("emailKey = %q", got)
	}
}
