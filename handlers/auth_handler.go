package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gediyoneyasu/WCU-CS-management/apperr"
	"github.com/gediyoneyasu/WCU-CS-management/config"
	"github.com/gediyoneyasu/WCU-CS-management/database"
	"github.com/gediyoneyasu/WCU-CS-management/idgen"
	"github.com/gediyoneyasu/WCU-CS-management/middlewares"
	"github.com/gediyoneyasu/WCU-CS-management/models"
)

type AuthHandler struct {
	Secret string
	Secure bool
	Store  *middlewares.GormSessionStore
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Secret: cfg.SessionSecret,
		Secure: cfg.IsProduction(),
		Store:  &middlewares.GormSessionStore{DB: database.DB},
	}
}

/* ====================== DTOs ====================== */

type staffLoginReq struct {
	TeacherID string `json:"teacher_id" form:"teacher_id"`
	Password  string `json:"password"   form:"password"`
}

type parentLoginReq struct {
	Phone    string `json:"phone"    form:"phone"`
	Password string `json:"password" form:"password"`
}

type parentRegisterReq struct {
	Name     string `json:"name"     form:"name"     validate:"required,max=100"`
	Phone    string `json:"phone"    form:"phone"    validate:"required,max=20"`
	Email    string `json:"email"    form:"email"    validate:"omitempty,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

/* ====================== Session plumbing ====================== */

func (h *AuthHandler) openSession(c echo.Context, role, subjectID, name string) error {
	sess := models.Session{
		ID:        uuid.NewString(),
		Role:      role,
		SubjectID: subjectID,
		Name:      name,
		ExpiresAt: time.Now().Add(middlewares.SessionTTL),
	}
	if err := h.Store.Create(&sess); err != nil {
		return dbErr(err)
	}
	token, err := middlewares.SignSessionToken(h.Secret, sess.ID)
	if err != nil {
		return apperr.Upstream(err)
	}
	middlewares.SetSessionCookie(c, token, h.Secure)
	return nil
}

func (h *AuthHandler) staffLogin(c echo.Context, wantAdmin bool) error {
	var req staffLoginReq
	if err := c.Bind(&req); err != nil {
		return apperr.ValidationMsg("INVALID_PAYLOAD", "invalid payload")
	}
	id := strings.TrimSpace(req.TeacherID)
	if id == "" || req.Password == "" {
		return apperr.ValidationMsg("MISSING_FIELDS", "teacher_id and password are required")
	}

	var t models.Teacher
	if err := database.DB.Where("teacher_id = ? OR email = ?", id, strings.ToLower(id)).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ValidationMsg("INVALID_CREDENTIALS", "invalid credentials")
		}
		return dbErr(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(t.Password), []byte(req.Password)) != nil {
		return apperr.ValidationMsg("INVALID_CREDENTIALS", "invalid credentials")
	}

	role := models.RoleTeacher
	if wantAdmin {
		if !t.IsAdmin() {
			return apperr.Forbidden()
		}
		role = models.RoleAdmin
	}
	if err := h.openSession(c, role, t.TeacherID, t.Name); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user": map[string]any{"teacher_id": t.TeacherID, "role": role, "name": t.Name},
	})
}

/* ====================== Handlers ====================== */

// POST /admin/login
func (h *AuthHandler) AdminLogin(c echo.Context) error { return h.staffLogin(c, true) }

// POST /teacher/login
func (h *AuthHandler) TeacherLogin(c echo.Context) error { return h.staffLogin(c, false) }

// POST /parent/login
func (h *AuthHandler) ParentLogin(c echo.Context) error {
	var req parentLoginReq
	if err := c.Bind(&req); err != nil {
		return apperr.ValidationMsg("INVALID_PAYLOAD", "invalid payload")
	}
	phone := strings.TrimSpace(req.Phone)
	if phone == "" || req.Password == "" {
		return apperr.ValidationMsg("MISSING_FIELDS", "phone and password are required")
	}

	var p models.Parent
	if err := database.DB.Where("phone = ?", phone).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ValidationMsg("INVALID_CREDENTIALS", "invalid credentials")
		}
		return dbErr(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(req.Password)) != nil {
		return apperr.ValidationMsg("INVALID_CREDENTIALS", "invalid credentials")
	}

	if err := h.openSession(c, models.RoleParent, p.ParentID, p.Name); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user": map[string]any{"parent_id": p.ParentID, "role": models.RoleParent, "name": p.Name},
	})
}

// POST /parent/register
//
// Registration is verified solely by matching an existing student's
// stored parent phone; every student carrying that phone is linked to
// the new parent account.
func (h *AuthHandler) ParentRegister(c echo.Context) error {
	var req parentRegisterReq
	if err := c.Bind(&req); err != nil {
		return apperr.ValidationMsg("INVALID_PAYLOAD", "invalid payload")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := validate.Struct(&req); err != nil {
		return apperr.Validation(fieldErrors(err))
	}

	var students []models.Student
	if err := database.DB.Where("parent_phone = ?", req.Phone).Find(&students).Error; err != nil {
		return dbErr(err)
	}
	if len(students) == 0 {
		return apperr.NotFound("NO_MATCHING_STUDENT", "no student is registered with this phone number")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Upstream(err)
	}

	var rec models.Parent
	err = createWithGeneratedID(func(tx *gorm.DB) error {
		pid, err := idgen.NextParentID(tx)
		if err != nil {
			return err
		}
		rec = models.Parent{
			ParentID: pid,
			Name:     req.Name,
			Phone:    req.Phone,
			Email:    req.Email,
			Password: string(hash),
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		for _, s := range students {
			link := models.ParentStudent{ParentID: pid, StudentID: s.StudentID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("PHONE_EXISTS", "an account with this phone already exists")
		}
		return dbErr(err)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"parent_id": rec.ParentID,
		"students":  len(students),
	})
}

// POST /logout
func (h *AuthHandler) Logout(c echo.Context) error {
	if id, ok := middlewares.CurrentIdentity(c); ok {
		if err := h.Store.Delete(id.SessionID); err != nil {
			return dbErr(err)
		}
	}
	middlewares.ClearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}
