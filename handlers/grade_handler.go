package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gediyoneyasu/WCU-CS-management/apperr"
	"github.com/gediyoneyasu/WCU-CS-management/database"
	"github.com/gediyoneyasu/WCU-CS-management/middlewares"
	"github.com/gediyoneyasu/WCU-CS-management/models"
)

type GradeHandler struct{}

func NewGradeHandler() *GradeHandler { return &GradeHandler{} }

type gradeEntry struct {
	StudentID string `json:"student_id"`
	Letter    string `json:"letter"`
}

type postGradesReq struct {
	Subject string       `json:"subject" form:"subject"`
	Term    int          `json:"term"    form:"term"`
	Year    int          `json:"year"    form:"year"`
	Entries []gradeEntry `json:"entries"`
}

var gradeLetters = map[string]bool{
	"A+": true, "A": true, "A-": true,
	"B+": true, "B": true, "B-": true,
	"C+": true, "C": true, "C-": true,
	"D": true, "F": true,
}

// POST /teacher/grades
//
// Append-only: every submission inserts fresh rows; earlier grades for
// the same subject/term/year stay alongside them.
func (h *GradeHandler) Post(c echo.Context) error {
	id, _ := middlewares.CurrentIdentity(c)

	var req postGradesReq
	if err := c.Bind(&req); err != nil {
		return apperr.ValidationMsg("INVALID_PAYLOAD", "invalid payload")
	}

	errs := map[string]string{}
	req.Subject = strings.TrimSpace(req.Subject)
	if req.Subject == "" {
		errs["subject"] = "subject is required"
	}
	if !models.ValidTerm(req.Term) {
		errs["term"] = "term must be 1, 2 or 3"
	}
	if req.Year < 2000 || req.Year > time.Now().Year()+1 {
		errs["year"] = "year is out of range"
	}
	if len(req.Entries) == 0 {
		errs["entries"] = "at least one grade entry is required"
	}
	rows := make([]models.Grade, 0, len(req.Entries))
	for _, e := range req.Entries {
		sid := strings.TrimSpace(e.StudentID)
		letter := strings.TrimSpace(strings.ToUpper(e.Letter))
		if sid == "" {
			errs["entries"] = "entry with empty student_id"
			continue
		}
		if !gradeLetters[letter] {
			errs[sid] = "unknown grade letter"
			continue
		}
		rows = append(rows, models.Grade{
			StudentID: sid,
			Subject:   req.Subject,
			Letter:    letter,
			Term:      req.Term,
			Year:      req.Year,
			TeacherID: id.SubjectID,
		})
	}
	if len(errs) > 0 {
		return apperr.Validation(errs)
	}

	if err := database.DB.Create(&rows).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"posted": len(rows)})
}

// GET /teacher/grades?student_id=&subject=&term=&year=
func (h *GradeHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.Grade{})
	if v := strings.TrimSpace(c.QueryParam("student_id")); v != "" {
		tx = tx.Where("student_id = ?", v)
	}
	if v := strings.TrimSpace(c.QueryParam("subject")); v != "" {
		tx = tx.Where("subject = ?", v)
	}
	if v := atoiOr(c.QueryParam("term"), 0); v != 0 {
		tx = tx.Where("term = ?", v)
	}
	if v := atoiOr(c.QueryParam("year"), 0); v != 0 {
		tx = tx.Where("year = ?", v)
	}

	var rows []models.Grade
	if err := tx.Order("year DESC, term DESC, subject ASC, id ASC").Find(&rows).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /parent/children/:student_id/grades?term=&year=
func (h *GradeHandler) ListForChild(c echo.Context) error {
	id, _ := middlewares.CurrentIdentity(c)
	studentID := c.Param("student_id")

	owns, err := parentOwnsStudent(id.SubjectID, studentID)
	if err != nil {
		return dbErr(err)
	}
	if !owns {
		return apperr.Forbidden()
	}

	tx := database.DB.Where("student_id = ?", studentID)
	if v := atoiOr(c.QueryParam("term"), 0); v != 0 {
		tx = tx.Where("term = ?", v)
	}
	if v := atoiOr(c.QueryParam("year"), 0); v != 0 {
		tx = tx.Where("year = ?", v)
	}

	var rows []models.Grade
	if err := tx.Order("year DESC, term DESC, subject ASC").Find(&rows).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, rows)
}
