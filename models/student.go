package models

import "time"

type Student struct {
	ID          uint      `gorm:"primaryKey"                   json:"id"`
	StudentID   string    `gorm:"size:20;uniqueIndex;not null" json:"student_id"` // WCU{YY}{NNNN}
	FullName    string    `gorm:"size:100;not null"            json:"full_name"`
	Grade       string    `gorm:"size:10;not null"             json:"grade"` // KG1..KG3 | 1..6
	Village     string    `gorm:"size:80;not null"             json:"village"`
	ParentPhone string    `gorm:"size:20;index;not null"       json:"parent_phone"`
	Sex         string    `gorm:"size:10;not null"             json:"sex"`
	Age         int       `gorm:"not null"                     json:"age"`
	Status      string    `gorm:"size:20;not null"             json:"status"` // active|inactive
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	StudentActive   = "active"
	StudentInactive = "inactive"
)

var studentGrades = []string{"KG1", "KG2", "KG3", "1", "2", "3", "4", "5", "6"}

// ValidGrade reports whether g is one of the school's grade levels.
func ValidGrade(g string) bool {
	for _, v := range studentGrades {
		if v == g {
			return true
		}
	}
	return false
}

func Grades() []string { return studentGrades }
