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
	"github.com/gediyoneyasu/WCU-CS-management/models"
)

type EventHandler struct{}

func NewEventHandler() *EventHandler { return &EventHandler{} }

type eventPayload struct {
	Title       string `json:"title"       form:"title"`
	Description string `json:"description" form:"description"`
	Date        string `json:"date"        form:"date"`
	Type        string `json:"type"        form:"type"`
}

func validateEvent(p *eventPayload) map[string]string {
	errs := map[string]string{}
	p.Title = strings.TrimSpace(p.Title)
	p.Date = strings.TrimSpace(p.Date)
	p.Type = strings.TrimSpace(p.Type)
	if p.Title == "" {
		errs["title"] = "title is required"
	}
	if _, err := time.Parse("2006-01-02", p.Date); err != nil {
		errs["date"] = "date must be YYYY-MM-DD"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// GET /events?from=&to=  (public, calendar feed)
func (h *EventHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.Event{})
	if v := strings.TrimSpace(c.QueryParam("from")); v != "" {
		tx = tx.Where("date >= ?", v)
	}
	if v := strings.TrimSpace(c.QueryParam("to")); v != "" {
		tx = tx.Where("date <= ?", v)
	}
	var rows []models.Event
	if err := tx.Order("date ASC, id ASC").Find(&rows).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /admin/events
func (h *EventHandler) Create(c echo.Context) error {
	var p eventPayload
	if err := c.Bind(&p); err != nil {
		return apperr.ValidationMsg("INVALID_PAYLOAD", "invalid payload")
	}
	if errs := validateEvent(&p); errs != nil {
		return apperr.Validation(errs)
	}
	rec := models.Event{Title: p.Title, Description: p.Description, Date: p.Date, Type: p.Type}
	if err := database.DB.Create(&rec).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusCreated, rec)
}

// PUT /admin/events/:id
func (h *EventHandler) Update(c echo.Context) error {
	var rec models.Event
	if err := database.DB.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("EVENT_NOT_FOUND", "event not found")
		}
		return dbErr(err)
	}
	var p eventPayload
	if err := c.Bind(&p); err != nil {
		return apperr.ValidationMsg("INVALID_PAYLOAD", "invalid payload")
	}
	if errs := validateEvent(&p); errs != nil {
		return apperr.Validation(errs)
	}
	if err := database.DB.Model(&rec).Updates(map[string]any{
		"title": p.Title, "description": p.Description, "date": p.Date, "type": p.Type,
	}).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, rec)
}

// DELETE /admin/events/:id
func (h *EventHandler) Delete(c echo.Context) error {
	res := database.DB.Delete(&models.Event{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		return dbErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("EVENT_NOT_FOUND", "event not found")
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}
