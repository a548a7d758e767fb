package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gediyoneyasu/WCU-CS-management/database"
	"github.com/gediyoneyasu/WCU-CS-management/models"
)

type InstallHandler struct{}

func NewInstallHandler() *InstallHandler { return &InstallHandler{} }

// POST /install
//
// Idempotent bootstrap: creates any missing tables, seeds the default
// admin-teacher account and a little reference data. Running it twice
// changes nothing.
func (h *InstallHandler) Install(c echo.Context) error {
	if err := database.Migrate(database.DB); err != nil {
		return dbErr(err)
	}

	created, err := seedDefaults(database.DB)
	if err != nil {
		return dbErr(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"ok":      true,
		"seeded":  created,
		"message": "installation complete; change the default admin password",
	})
}

func seedDefaults(db *gorm.DB) (bool, error) {
	var n int64
	if err := db.Model(&models.Teacher{}).Where("role = ?", models.RoleAdmin).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	admin := models.Teacher{
		TeacherID: "ADMIN001",
		Name:      "School Administrator",
		Email:     "admin@wcu-cs.edu.et",
		Password:  string(hash),
		Subject:   "Administration",
		Role:      models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return false, err
	}

	samples := []models.Announcement{
		{Title: "Welcome to the school portal", Body: "Parents can register with the phone number on file.", Category: "general"},
	}
	if err := db.Create(&samples).Error; err != nil {
		return false, err
	}
	return true, nil
}
