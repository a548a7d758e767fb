package models

import "time"

// Grade rows are append-only: posting grades inserts new rows and never
// overwrites earlier ones, so a subject/term/year pair may appear more
// than once for a student.
type Grade struct {
	ID        uint      `gorm:"primaryKey"             json:"id"`
	StudentID string    `gorm:"size:20;index;not null" json:"student_id"`
	Subject   string    `gorm:"size:50;not null"       json:"subject"`
	Letter    string    `gorm:"size:5;not null"        json:"letter"`
	Term      int       `gorm:"not null"               json:"term"` // 1..3
	Year      int       `gorm:"not null"               json:"year"`
	TeacherID string    `gorm:"size:20;not null"       json:"teacher_id"`
	CreatedAt time.Time `json:"created_at"`
}

func ValidTerm(t int) bool { return t >= 1 && t <= 3 }
