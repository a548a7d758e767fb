package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/gediyoneyasu/WCU-CS-management/apperr"
	"github.com/gediyoneyasu/WCU-CS-management/database"
	"github.com/gediyoneyasu/WCU-CS-management/middlewares"
	"github.com/gediyoneyasu/WCU-CS-management/models"
)

type ParentHandler struct{}

func NewParentHandler() *ParentHandler { return &ParentHandler{} }

// GET /parent/children
func (h *ParentHandler) Children(c echo.Context) error {
	id, _ := middlewares.CurrentIdentity(c)

	var rows []models.Student
	err := database.DB.
		Joins("JOIN parent_students ps ON ps.student_id = students.student_id").
		Where("ps.parent_id = ?", id.SubjectID).
		Order("students.student_id ASC").
		Find(&rows).Error
	if err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /admin/parents?q=
func (h *ParentHandler) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	tx := database.DB.Model(&models.Parent{})
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(parent_id) LIKE ? OR LOWER(name) LIKE ? OR phone LIKE ?", like, like, like)
	}
	var rows []models.Parent
	if err := tx.Order("id ASC").Find(&rows).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /admin/parents/:parent_id/students {student_id}
//
// Links one more student to an existing parent account (e.g. a sibling
// registered after the parent signed up).
func (h *ParentHandler) LinkStudent(c echo.Context) error {
	parentID := c.Param("parent_id")

	var req struct {
		StudentID string `json:"student_id" form:"student_id"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.ValidationMsg("INVALID_PAYLOAD", "invalid payload")
	}
	studentID := strings.TrimSpace(req.StudentID)
	if studentID == "" {
		return apperr.Validation(map[string]string{"student_id": "student_id is required"})
	}

	var parent models.Parent
	if err := database.DB.Where("parent_id = ?", parentID).First(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("PARENT_NOT_FOUND", "parent not found")
		}
		return dbErr(err)
	}
	var student models.Student
	if err := database.DB.Where("student_id = ?", studentID).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("STUDENT_NOT_FOUND", "student not found")
		}
		return dbErr(err)
	}

	link := models.ParentStudent{ParentID: parent.ParentID, StudentID: student.StudentID}
	if err := database.DB.Create(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("ALREADY_LINKED", "student is already linked to this parent")
		}
		return dbErr(err)
	}
	return c.JSON(http.StatusCreated, link)
}
