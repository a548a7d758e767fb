package models

import "time"

// One row per student per teacher per day, enforced by the unique
// index. Attendance is partitioned by teacher: two teachers may each
// keep a record for the same student and date (multi-period
// attendance), so there is no global uniqueness on (student_id, date).
type Attendance struct {
	ID        uint      `gorm:"primaryKey"                                                            json:"id"`
	StudentID string    `gorm:"size:20;index;not null;uniqueIndex:idx_teacher_day_student,priority:3" json:"student_id"`
	Date      string    `gorm:"size:10;not null;uniqueIndex:idx_teacher_day_student,priority:2"       json:"date"` // YYYY-MM-DD
	Status    string    `gorm:"size:10;not null"                                                      json:"status"`
	TeacherID string    `gorm:"size:20;not null;uniqueIndex:idx_teacher_day_student,priority:1"       json:"teacher_id"`
	Note      string    `gorm:"type:text"                                                             json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
	AttendanceOther   = "Other"
)

func ValidAttendanceStatus(s string) bool {
	return s == AttendancePresent || s == AttendanceAbsent || s == AttendanceOther
}
