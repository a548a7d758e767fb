package models

import "time"

type Teacher struct {
	ID        uint      `gorm:"primaryKey"                   json:"id"`
	TeacherID string    `gorm:"size:20;uniqueIndex;not null" json:"teacher_id"` // caller-supplied
	Name      string    `gorm:"size:100;not null"            json:"name"`
	Email     string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null"                     json:"-"` // bcrypt hash
	Subject   string    `gorm:"size:50"                      json:"subject"`
	Phone     string    `gorm:"size:20"                      json:"phone"`
	Role      string    `gorm:"size:20;not null;default:teacher" json:"role"` // admin|teacher
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleParent  = "parent"
)

func (t *Teacher) IsAdmin() bool { return t.Role == RoleAdmin }
