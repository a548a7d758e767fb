package models

import "time"

// Event carries a date for calendar rendering.
type Event struct {
	ID          uint      `gorm:"primaryKey"        json:"id"`
	Title       string    `gorm:"size:150;not null" json:"title"`
	Description string    `gorm:"type:text"         json:"description"`
	Date        string    `gorm:"size:10;not null"  json:"date"` // YYYY-MM-DD
	Type        string    `gorm:"size:30"           json:"type"` // holiday | exam | meeting | other
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Announcement struct {
	ID        uint      `gorm:"primaryKey"        json:"id"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Body      string    `gorm:"type:text"         json:"body"`
	Category  string    `gorm:"size:30"           json:"category"` // general | academic | payment | urgent
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
