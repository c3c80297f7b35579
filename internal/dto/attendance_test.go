package dto

import "testing"

func TestMonthRange(t *testing.T) {
	from, to := MonthRange("2025-02")
	if from != "2025-02-01" || to != "2025-02-31" {
		t.Fatalf("MonthRange = %s..%s", from, to)
	}

	from, to = MonthRange("")
	if from != "" || to != "" {
		t.Fatalf("empty month should produce an open range, got %s..%s", from, to)
	}
}

func TestMonthRangeIsLexicographic(t *testing.T) {
	from, to := MonthRange("2025-04")
	inside := []string{"2025-04-01", "2025-04-15", "2025-04-30", "2025-04-31"}
	outside := []string{"2025-03-31", "2025-05-01", "2025-04-32"}

	for _, d := range inside {
		if d < from || d > to {
			t.Errorf("%s should be inside %s..%s", d, from, to)
		}
	}
	for _, d := range outside {
		if d >= from && d <= to {
			t.Errorf("%s should be outside %s..%s", d, from, to)
		}
	}
}

func TestNewAttendanceQuery(t *testing.T) {
	q := NewAttendanceQuery("2025-01", "uid-1")
	if q.DateFrom != "2025-01-01" || q.DateTo != "2025-01-31" || q.UID != "uid-1" {
		t.Fatalf("unexpected query: %+v", q)
	}
}
