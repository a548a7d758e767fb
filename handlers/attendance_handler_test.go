package handlers

import (
	"testing"
)

func TestAttendanceLockKey(t *testing.T) {
	k := attendanceLockKey("T001", "2025-09-01")
	if k != attendanceLockKey("T001", "2025-09-01") {
		t.Error("key not stable for the same teacher and date")
	}
	if k == attendanceLockKey("T001", "2025-09-02") {
		t.Error("different dates share a key")
	}
	if k == attendanceLockKey("T002", "2025-09-01") {
		t.Error("different teachers share a key")
	}
	// the separator keeps shifted concatenations apart
	if attendanceLockKey("T1", "12025-09-01") == attendanceLockKey("T11", "2025-09-01") {
		t.Error("concatenation ambiguity collides")
	}
}

func TestBuildAttendanceRows(t *testing.T) {
	t.Run("valid submission maps one row per student", func(t *testing.T) {
		rows, errs := buildAttendanceRows("T001", "2025-09-01", []attendanceEntry{
			{StudentID: "WCU250001", Status: "Present"},
			{StudentID: "WCU250002", Status: "Absent", Note: "sick"},
			{StudentID: "WCU250003", Status: "Other", Note: "market day"},
		})
		if errs != nil {
			t.Fatalf("unexpected errors: %v", errs)
		}
		if len(rows) != 3 {
			t.Fatalf("rows = %d, want 3", len(rows))
		}
		for _, r := range rows {
			if r.TeacherID != "T001" || r.Date != "2025-09-01" {
				t.Errorf("row not scoped to teacher/day: %+v", r)
			}
		}
		if rows[1].Note != "sick" {
			t.Errorf("note lost: %+v", rows[1])
		}
	})

	t.Run("repeated student keeps the last status", func(t *testing.T) {
		rows, errs := buildAttendanceRows("T001", "2025-09-01", []attendanceEntry{
			{StudentID: "WCU250001", Status: "Present"},
			{StudentID: "WCU250001", Status: "Absent"},
		})
		if errs != nil {
			t.Fatalf("unexpected errors: %v", errs)
		}
		if len(rows) != 1 {
			t.Fatalf("rows = %d, want 1", len(rows))
		}
		if rows[0].Status != "Absent" {
			t.Errorf("status = %q, want Absent (last write wins)", rows[0].Status)
		}
	})

	tests := []struct {
		name      string
		date      string
		entries   []attendanceEntry
		wantField string
	}{
		{
			name: "bad date", date: "01-09-2025",
			entries:   []attendanceEntry{{StudentID: "WCU250001", Status: "Present"}},
			wantField: "date",
		},
		{
			name: "empty submission", date: "2025-09-01",
			entries: nil, wantField: "entries",
		},
		{
			name: "unknown status", date: "2025-09-01",
			entries:   []attendanceEntry{{StudentID: "WCU250001", Status: "Late"}},
			wantField: "WCU250001",
		},
		{
			name: "empty student id", date: "2025-09-01",
			entries:   []attendanceEntry{{StudentID: "  ", Status: "Present"}},
			wantField: "entries",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, errs := buildAttendanceRows("T001", tt.date, tt.entries)
			if rows != nil {
				t.Errorf("rows = %v, want nil", rows)
			}
			if errs == nil {
				t.Fatal("expected field errors")
			}
			if _, ok := errs[tt.wantField]; !ok {
				t.Errorf("errs = %v, want key %q", errs, tt.wantField)
			}
		})
	}
}
