package models

import "time"

// Session is the server-side half of the login cookie. The cookie only
// carries the signed session ID; role and subject live here so they can
// be revoked centrally. ExpiresAt slides forward on each authenticated
// request (24h idle window).
type Session struct {
	ID        string    `gorm:"primaryKey;size:40" json:"id"` // uuid
	Role      string    `gorm:"size:20;not null"   json:"role"`
	SubjectID string    `gorm:"size:20;not null"   json:"subject_id"` // teacher_id or parent_id
	Name      string    `gorm:"size:100"           json:"name"`
	ExpiresAt time.Time `gorm:"index;not null"     json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) Expired(now time.Time) bool { return now.After(s.ExpiresAt) }
