package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/gediyoneyasu/WCU-CS-management/apperr"
	"github.com/gediyoneyasu/WCU-CS-management/database"
	"github.com/gediyoneyasu/WCU-CS-management/middlewares"
	"github.com/gediyoneyasu/WCU-CS-management/models"
)

type HomeworkHandler struct{}

func NewHomeworkHandler() *HomeworkHandler { return &HomeworkHandler{} }

// POST /teacher/homework (multipart; material file optional)
func (h *HomeworkHandler) Create(c echo.Context) error {
	id, _ := middlewares.CurrentIdentity(c)

	grade := strings.TrimSpace(c.FormValue("grade"))
	subject := strings.TrimSpace(c.FormValue("subject"))
	title := strings.TrimSpace(c.FormValue("title"))
	description := strings.TrimSpace(c.FormValue("description"))
	dueDate := strings.TrimSpace(c.FormValue("due_date"))

	errs := map[string]string{}
	if !models.ValidGrade(grade) {
		errs["grade"] = gradeHint
	}
	if subject == "" {
		errs["subject"] = "subject is required"
	}
	if title == "" {
		errs["title"] = "title is required"
	}
	if _, err := time.Parse("2006-01-02", dueDate); err != nil {
		errs["due_date"] = "due_date must be YYYY-MM-DD"
	}
	if len(errs) > 0 {
		return apperr.Validation(errs)
	}

	material, err := saveUpload(c, "material", "materials", maxUploadSize)
	if err != nil {
		return err
	}

	rec := models.Homework{
		TeacherID:    id.SubjectID,
		Grade:        grade,
		Subject:      subject,
		Title:        title,
		Description:  description,
		DueDate:      dueDate,
		MaterialPath: material,
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusCreated, rec)
}

// GET /homework?grade=&subject=
func (h *HomeworkHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.Homework{})
	if v := strings.TrimSpace(c.QueryParam("grade")); v != "" {
		tx = tx.Where("grade = ?", v)
	}
	if v := strings.TrimSpace(c.QueryParam("subject")); v != "" {
		tx = tx.Where("subject = ?", v)
	}
	var rows []models.Homework
	if err := tx.Order("due_date DESC, id DESC").Find(&rows).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /parent/homework/:id/submit (multipart; file optional)
//
// One submission per (homework, student): a duplicate hits the unique
// index and is rejected, leaving the original untouched.
func (h *HomeworkHandler) Submit(c echo.Context) error {
	id, _ := middlewares.CurrentIdentity(c)

	studentID := strings.TrimSpace(c.FormValue("student_id"))
	text := strings.TrimSpace(c.FormValue("text"))
	if studentID == "" {
		return apperr.Validation(map[string]string{"student_id": "student_id is required"})
	}

	owns, err := parentOwnsStudent(id.SubjectID, studentID)
	if err != nil {
		return dbErr(err)
	}
	if !owns {
		return apperr.Forbidden()
	}

	var hw models.Homework
	if err := database.DB.First(&hw, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("HOMEWORK_NOT_FOUND", "homework not found")
		}
		return dbErr(err)
	}

	file, err := saveUpload(c, "file", "submissions", maxUploadSize)
	if err != nil {
		return err
	}

	rec := models.HomeworkSubmission{
		HomeworkID: hw.ID,
		StudentID:  studentID,
		Text:       text,
		FilePath:   file,
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return dupErr(err, "DUPLICATE_SUBMISSION", "this homework was already submitted for the student")
	}
	return c.JSON(http.StatusCreated, rec)
}

// GET /teacher/homework/:id/submissions
func (h *HomeworkHandler) ListSubmissions(c echo.Context) error {
	var hw models.Homework
	if err := database.DB.First(&hw, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("HOMEWORK_NOT_FOUND", "homework not found")
		}
		return dbErr(err)
	}
	var rows []models.HomeworkSubmission
	if err := database.DB.Where("homework_id = ?", hw.ID).
		Order("submitted_at ASC").Find(&rows).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, rows)
}

// PUT /teacher/submissions/:id/grade
func (h *HomeworkHandler) GradeSubmission(c echo.Context) error {
	var req struct {
		GradeLetter string `json:"grade_letter" form:"grade_letter"`
		Feedback    string `json:"feedback"     form:"feedback"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.ValidationMsg("INVALID_PAYLOAD", "invalid payload")
	}
	letter := strings.TrimSpace(strings.ToUpper(req.GradeLetter))
	if letter != "" && !gradeLetters[letter] {
		return apperr.Validation(map[string]string{"grade_letter": "unknown grade letter"})
	}

	var rec models.HomeworkSubmission
	if err := database.DB.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("SUBMISSION_NOT_FOUND", "submission not found")
		}
		return dbErr(err)
	}

	if err := database.DB.Model(&rec).Updates(map[string]any{
		"grade_letter": letter,
		"feedback":     strings.TrimSpace(req.Feedback),
	}).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, rec)
}
