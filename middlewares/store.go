package middlewares

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/gediyoneyasu/WCU-CS-management/models"
)

// GormSessionStore keeps sessions in the application database so a
// restart does not log everyone out and logout can revoke server-side.
type GormSessionStore struct {
	DB *gorm.DB
}

func (s *GormSessionStore) Get(id string) (*models.Session, error) {
	var sess models.Session
	err := s.DB.First(&sess, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *GormSessionStore) Touch(id string, expiresAt time.Time) error {
	return s.DB.Model(&models.Session{}).Where("id = ?", id).
		Update("expires_at", expiresAt).Error
}

// Create inserts a fresh session row.
func (s *GormSessionStore) Create(sess *models.Session) error {
	return s.DB.Create(sess).Error
}

// Delete revokes a session (logout).
func (s *GormSessionStore) Delete(id string) error {
	return s.DB.Delete(&models.Session{}, "id = ?", id).Error
}
