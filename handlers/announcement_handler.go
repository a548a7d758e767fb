package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/gediyoneyasu/WCU-CS-management/apperr"
	"github.com/gediyoneyasu/WCU-CS-management/database"
	"github.com/gediyoneyasu/WCU-CS-management/models"
)

type AnnouncementHandler struct{}

func NewAnnouncementHandler() *AnnouncementHandler { return &AnnouncementHandler{} }

// GET /announcements?category=
func (h *AnnouncementHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.Announcement{})
	if v := strings.TrimSpace(c.QueryParam("category")); v != "" {
		tx = tx.Where("category = ?", v)
	}
	var rows []models.Announcement
	if err := tx.Order("created_at DESC").Limit(atoiOr(c.QueryParam("limit"), 50)).Find(&rows).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /admin/announcements
func (h *AnnouncementHandler) Create(c echo.Context) error {
	var p struct {
		Title    string `json:"title"    form:"title"`
		Body     string `json:"body"     form:"body"`
		Category string `json:"category" form:"category"`
	}
	if err := c.Bind(&p); err != nil {
		return apperr.ValidationMsg("INVALID_PAYLOAD", "invalid payload")
	}
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return apperr.Validation(map[string]string{"title": "title is required"})
	}
	rec := models.Announcement{Title: p.Title, Body: p.Body, Category: strings.TrimSpace(p.Category)}
	if err := database.DB.Create(&rec).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusCreated, rec)
}

// PUT /admin/announcements/:id
func (h *AnnouncementHandler) Update(c echo.Context) error {
	var rec models.Announcement
	if err := database.DB.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("ANNOUNCEMENT_NOT_FOUND", "announcement not found")
		}
		return dbErr(err)
	}
	var p struct {
		Title    string `json:"title"    form:"title"`
		Body     string `json:"body"     form:"body"`
		Category string `json:"category" form:"category"`
	}
	if err := c.Bind(&p); err != nil {
		return apperr.ValidationMsg("INVALID_PAYLOAD", "invalid payload")
	}
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return apperr.Validation(map[string]string{"title": "title is required"})
	}
	if err := database.DB.Model(&rec).Updates(map[string]any{
		"title": p.Title, "body": p.Body, "category": strings.TrimSpace(p.Category),
	}).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, rec)
}

// DELETE /admin/announcements/:id
func (h *AnnouncementHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.Announcement{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		return dbErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("ANNOUNCEMENT_NOT_FOUND", "announcement not found")
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}
