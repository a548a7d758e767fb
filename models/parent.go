package models

import "time"

type Parent struct {
	ID        uint      `gorm:"primaryKey"                   json:"id"`
	ParentID  string    `gorm:"size:20;uniqueIndex;not null" json:"parent_id"` // PAR{NNN}
	Name      string    `gorm:"size:100;not null"            json:"name"`
	Phone     string    `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	Email     string    `gorm:"size:120"                     json:"email,omitempty"`
	Password  string    `gorm:"not null"                     json:"-"` // bcrypt hash
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ParentStudent links a parent to one student. Replaces the legacy
// comma-joined student_ids column with a real join table.
type ParentStudent struct {
	ID        uint   `gorm:"primaryKey"                                    json:"id"`
	ParentID  string `gorm:"size:20;not null;uniqueIndex:idx_parent_student" json:"parent_id"`
	StudentID string `gorm:"size:20;not null;uniqueIndex:idx_parent_student" json:"student_id"`
}
