package models

import "time"

type Homework struct {
	ID           uint      `gorm:"primaryKey"             json:"id"`
	TeacherID    string    `gorm:"size:20;index;not null" json:"teacher_id"`
	Grade        string    `gorm:"size:10;index;not null" json:"grade"`
	Subject      string    `gorm:"size:50;not null"       json:"subject"`
	Title        string    `gorm:"size:150;not null"      json:"title"`
	Description  string    `gorm:"type:text"              json:"description"`
	DueDate      string    `gorm:"size:10;not null"       json:"due_date"` // YYYY-MM-DD
	MaterialPath string    `gorm:"size:255"               json:"material_path,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HomeworkSubmission is unique per (homework_id, student_id); a second
// submission for the same pair is rejected, never overwritten.
type HomeworkSubmission struct {
	ID          uint      `gorm:"primaryKey"                                          json:"id"`
	HomeworkID  uint      `gorm:"not null;uniqueIndex:idx_homework_student"           json:"homework_id"`
	StudentID   string    `gorm:"size:20;not null;uniqueIndex:idx_homework_student"   json:"student_id"`
	Text        string    `gorm:"type:text"                                           json:"text"`
	FilePath    string    `gorm:"size:255"                                            json:"file_path,omitempty"`
	SubmittedAt time.Time `gorm:"autoCreateTime"                                      json:"submitted_at"`

	// graded later by a teacher; empty until then
	GradeLetter string `gorm:"size:5"    json:"grade_letter,omitempty"`
	Feedback    string `gorm:"type:text" json:"feedback,omitempty"`
}
