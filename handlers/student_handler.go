package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/gediyoneyasu/WCU-CS-management/apperr"
	"github.com/gediyoneyasu/WCU-CS-management/database"
	"github.com/gediyoneyasu/WCU-CS-management/idgen"
	"github.com/gediyoneyasu/WCU-CS-management/models"
)

type StudentHandler struct{}

func NewStudentHandler() *StudentHandler { return &StudentHandler{} }

/* ===== Validation rules ===== */

var (
	stuReName  = regexp.MustCompile(`^[A-Za-z\s'\-]{2,100}$`)
	stuRePhone = regexp.MustCompile(`^\+?[0-9]{9,15}$`)
	stuReSex   = regexp.MustCompile(`^(Male|Female)$`)
)

type studentPayload struct {
	FullName    string `json:"full_name"    form:"full_name"`
	Grade       string `json:"grade"        form:"grade"`
	Village     string `json:"village"      form:"village"`
	ParentPhone string `json:"parent_phone" form:"parent_phone"`
	Sex         string `json:"sex"          form:"sex"`
	Age         int    `json:"age"          form:"age"`
}

func (p *studentPayload) normalize() {
	p.FullName = strings.Join(strings.Fields(p.FullName), " ")
	p.Grade = strings.TrimSpace(p.Grade)
	p.Village = strings.TrimSpace(p.Village)
	p.ParentPhone = strings.TrimSpace(p.ParentPhone)
	p.Sex = strings.TrimSpace(p.Sex)
}

func validateStudent(p *studentPayload) map[string]string {
	errs := map[string]string{}

	if !stuReName.MatchString(p.FullName) {
		errs["full_name"] = "full name must be 2-100 letters"
	}
	if !models.ValidGrade(p.Grade) {
		errs["grade"] = gradeHint
	}
	if strings.TrimSpace(p.Village) == "" {
		errs["village"] = "village is required"
	}
	if !stuRePhone.MatchString(p.ParentPhone) {
		errs["parent_phone"] = "parent phone must be 9-15 digits"
	}
	if !stuReSex.MatchString(p.Sex) {
		errs["sex"] = "sex must be Male or Female"
	}
	if p.Age < 3 || p.Age > 18 {
		errs["age"] = "age must be between 3 and 18"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

/* ===== Handlers ===== */

// POST /admin/students
//
// Code generation and the insert run in one transaction; a losing race
// on the unique index retries with a fresh code.
func (h *StudentHandler) Register(c echo.Context) error {
	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return apperr.ValidationMsg("INVALID_PAYLOAD", "invalid payload")
	}
	p.normalize()
	if errs := validateStudent(&p); errs != nil {
		return apperr.Validation(errs)
	}

	var rec models.Student
	err := createWithGeneratedID(func(tx *gorm.DB) error {
		sid, err := idgen.NextStudentID(tx, time.Now())
		if err != nil {
			return err
		}
		rec = models.Student{
			StudentID:   sid,
			FullName:    p.FullName,
			Grade:       p.Grade,
			Village:     p.Village,
			ParentPhone: p.ParentPhone,
			Sex:         p.Sex,
			Age:         p.Age,
			Status:      models.StudentActive,
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return dbErr(err)
	}

	return c.JSON(http.StatusCreated, rec)
}

// GET /admin/students?q=&grade=&status=&page=&size=
func (h *StudentHandler) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	grade := strings.TrimSpace(c.QueryParam("grade"))
	status := strings.TrimSpace(c.QueryParam("status"))
	page := atoiOr(c.QueryParam("page"), 1)
	size := atoiOr(c.QueryParam("size"), 20)
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	tx := database.DB.Model(&models.Student{})
	if grade != "" {
		tx = tx.Where("grade = ?", grade)
	}
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(student_id) LIKE ? OR LOWER(full_name) LIKE ? OR LOWER(village) LIKE ?",
			like, like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return dbErr(err)
	}

	var rows []models.Student
	if err := tx.Order("id ASC").Offset((page - 1) * size).Limit(size).Find(&rows).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"total": total, "items": rows})
}

// GET /admin/students/:student_id
func (h *StudentHandler) Get(c echo.Context) error {
	var rec models.Student
	if err := database.DB.Where("student_id = ?", c.Param("student_id")).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("STUDENT_NOT_FOUND", "student not found")
		}
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, rec)
}

// PUT /admin/students/:student_id
//
// The student code is immutable once created; everything else may change.
func (h *StudentHandler) Update(c echo.Context) error {
	var rec models.Student
	if err := database.DB.Where("student_id = ?", c.Param("student_id")).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("STUDENT_NOT_FOUND", "student not found")
		}
		return dbErr(err)
	}

	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return apperr.ValidationMsg("INVALID_PAYLOAD", "invalid payload")
	}
	p.normalize()
	if errs := validateStudent(&p); errs != nil {
		return apperr.Validation(errs)
	}

	updates := map[string]any{
		"full_name":    p.FullName,
		"grade":        p.Grade,
		"village":      p.Village,
		"parent_phone": p.ParentPhone,
		"sex":          p.Sex,
		"age":          p.Age,
	}
	if err := database.DB.Model(&rec).Updates(updates).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, rec)
}

// POST /admin/students/:student_id/deactivate
func (h *StudentHandler) Deactivate(c echo.Context) error {
	res := database.DB.Model(&models.Student{}).
		Where("student_id = ?", c.Param("student_id")).
		Update("status", models.StudentInactive)
	if res.Error != nil {
		return dbErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("STUDENT_NOT_FOUND", "student not found")
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}
