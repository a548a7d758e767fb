package models

import "time"

type Book struct {
	ID              uint      `gorm:"primaryKey"                   json:"id"`
	BookID          string    `gorm:"size:20;uniqueIndex;not null" json:"book_id"` // LIB{NNN}
	Title           string    `gorm:"size:150;not null"            json:"title"`
	Author          string    `gorm:"size:100"                     json:"author"`
	ISBN            string    `gorm:"size:20"                      json:"isbn"`
	Category        string    `gorm:"size:50"                      json:"category"`
	GradeLevel      string    `gorm:"size:10"                      json:"grade_level"`
	TotalCopies     int       `gorm:"not null"                     json:"total_copies"`
	AvailableCopies int       `gorm:"not null"                     json:"available_copies"` // <= TotalCopies
	FilePath        string    `gorm:"size:255"                     json:"file_path,omitempty"`
	CoverPath       string    `gorm:"size:255"                     json:"cover_path,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type BookLoan struct {
	ID         uint       `gorm:"primaryKey"             json:"id"`
	BookID     string     `gorm:"size:20;index;not null" json:"book_id"`
	StudentID  string     `gorm:"size:20;index;not null" json:"student_id"`
	BorrowedAt time.Time  `gorm:"autoCreateTime"         json:"borrowed_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}
