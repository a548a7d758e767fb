package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gediyoneyasu/WCU-CS-management/apperr"
	"github.com/gediyoneyasu/WCU-CS-management/database"
	"github.com/gediyoneyasu/WCU-CS-management/middlewares"
	"github.com/gediyoneyasu/WCU-CS-management/models"
)

type TeacherHandler struct{}

func NewTeacherHandler() *TeacherHandler { return &TeacherHandler{} }

type teacherPayload struct {
	TeacherID string `json:"teacher_id" form:"teacher_id" validate:"required,max=20"`
	Name      string `json:"name"       form:"name"       validate:"required,max=100"`
	Email     string `json:"email"      form:"email"      validate:"required,email"`
	Password  string `json:"password"   form:"password"   validate:"omitempty,min=6"`
	Subject   string `json:"subject"    form:"subject"    validate:"max=50"`
	Phone     string `json:"phone"      form:"phone"      validate:"max=20"`
	Role      string `json:"role"       form:"role"       validate:"omitempty,oneof=admin teacher"`
}

func (p *teacherPayload) normalize() {
	p.TeacherID = strings.TrimSpace(p.TeacherID)
	p.Name = strings.Join(strings.Fields(p.Name), " ")
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
	p.Subject = strings.TrimSpace(p.Subject)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Role = strings.TrimSpace(strings.ToLower(p.Role))
}

// POST /admin/teachers
func (h *TeacherHandler) Create(c echo.Context) error {
	var p teacherPayload
	if err := c.Bind(&p); err != nil {
		return apperr.ValidationMsg("INVALID_PAYLOAD", "invalid payload")
	}
	p.normalize()
	if p.Password == "" {
		return apperr.Validation(map[string]string{"password": "password is required"})
	}
	if err := validate.Struct(&p); err != nil {
		return apperr.Validation(fieldErrors(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Upstream(err)
	}
	role := p.Role
	if role == "" {
		role = models.RoleTeacher
	}
	rec := models.Teacher{
		TeacherID: p.TeacherID,
		Name:      p.Name,
		Email:     p.Email,
		Password:  string(hash),
		Subject:   p.Subject,
		Phone:     p.Phone,
		Role:      role,
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("TEACHER_EXISTS", "teacher id or email already in use")
		}
		return dbErr(err)
	}
	return c.JSON(http.StatusCreated, rec)
}

// GET /admin/teachers
func (h *TeacherHandler) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	tx := database.DB.Model(&models.Teacher{})
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(teacher_id) LIKE ? OR LOWER(name) LIKE ? OR LOWER(subject) LIKE ?",
			like, like, like)
	}
	var rows []models.Teacher
	if err := tx.Order("id ASC").Find(&rows).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, rows)
}

// PUT /admin/teachers/:teacher_id
func (h *TeacherHandler) Update(c echo.Context) error {
	var rec models.Teacher
	if err := database.DB.Where("teacher_id = ?", c.Param("teacher_id")).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("TEACHER_NOT_FOUND", "teacher not found")
		}
		return dbErr(err)
	}

	var p teacherPayload
	if err := c.Bind(&p); err != nil {
		return apperr.ValidationMsg("INVALID_PAYLOAD", "invalid payload")
	}
	p.TeacherID = rec.TeacherID // identity is immutable
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return apperr.Validation(fieldErrors(err))
	}

	updates := map[string]any{
		"name":    p.Name,
		"email":   p.Email,
		"subject": p.Subject,
		"phone":   p.Phone,
	}
	if p.Role != "" {
		updates["role"] = p.Role
	}
	if p.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
		if err != nil {
			return apperr.Upstream(err)
		}
		updates["password"] = string(hash)
	}
	if err := database.DB.Model(&rec).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("EMAIL_EXISTS", "email already in use")
		}
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, rec)
}

// DELETE /admin/teachers/:teacher_id
func (h *TeacherHandler) Delete(c echo.Context) error {
	res := database.DB.Where("teacher_id = ?", c.Param("teacher_id")).Delete(&models.Teacher{})
	if res.Error != nil {
		return dbErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("TEACHER_NOT_FOUND", "teacher not found")
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

// PUT /teacher/password — change own password
func (h *TeacherHandler) ChangePassword(c echo.Context) error {
	id, _ := middlewares.CurrentIdentity(c)

	var req struct {
		Current string `json:"current_password" form:"current_password"`
		New     string `json:"new_password"     form:"new_password"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.ValidationMsg("INVALID_PAYLOAD", "invalid payload")
	}
	if len(req.New) < 6 {
		return apperr.Validation(map[string]string{"new_password": "must be at least 6 characters"})
	}

	var rec models.Teacher
	if err := database.DB.Where("teacher_id = ?", id.SubjectID).First(&rec).Error; err != nil {
		return dbErr(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.Password), []byte(req.Current)) != nil {
		return apperr.ValidationMsg("INVALID_CREDENTIALS", "current password is wrong")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.New), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Upstream(err)
	}
	if err := database.DB.Model(&rec).Update("password", string(hash)).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}
