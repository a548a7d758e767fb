package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/gediyoneyasu/WCU-CS-management/apperr"
	"github.com/gediyoneyasu/WCU-CS-management/database"
	"github.com/gediyoneyasu/WCU-CS-management/middlewares"
	"github.com/gediyoneyasu/WCU-CS-management/models"
)

type PaymentHandler struct{}

func NewPaymentHandler() *PaymentHandler { return &PaymentHandler{} }

// POST /payments (public, multipart)
//
// Anyone may submit a payment for an existing student; it always starts
// as pending. The screenshot is optional but size-capped.
func (h *PaymentHandler) Submit(c echo.Context) error {
	studentID := strings.TrimSpace(c.FormValue("student_id"))
	method := strings.TrimSpace(c.FormValue("method"))
	txnID := strings.TrimSpace(c.FormValue("transaction_id"))
	amount, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("amount")), 64)

	errs := map[string]string{}
	if studentID == "" {
		errs["student_id"] = "student_id is required"
	}
	if err != nil || amount <= 0 {
		errs["amount"] = "amount must be a positive number"
	}
	if !models.ValidPaymentMethod(method) {
		errs["method"] = "method must be CBE, Telebirr, Awash or Other"
	}
	if len(errs) > 0 {
		return apperr.Validation(errs)
	}

	var student models.Student
	if err := database.DB.Where("student_id = ?", studentID).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("STUDENT_NOT_FOUND", "student not found")
		}
		return dbErr(err)
	}

	shot, err := saveUpload(c, "screenshot", "payments", maxUploadSize)
	if err != nil {
		return err
	}

	rec := models.Payment{
		StudentID:     student.StudentID,
		Amount:        amount,
		Method:        method,
		TransactionID: txnID,
		Screenshot:    shot,
		Status:        models.PaymentPending,
	}
	if err := database.DB.Create(&rec).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusCreated, rec)
}

// GET /admin/payments?status=&student_id=&page=&size=
func (h *PaymentHandler) List(c echo.Context) error {
	status := strings.TrimSpace(c.QueryParam("status"))
	studentID := strings.TrimSpace(c.QueryParam("student_id"))
	page := atoiOr(c.QueryParam("page"), 1)
	size := atoiOr(c.QueryParam("size"), 20)
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	tx := database.DB.Model(&models.Payment{})
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if studentID != "" {
		tx = tx.Where("student_id = ?", studentID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return dbErr(err)
	}
	var rows []models.Payment
	if err := tx.Order("paid_at DESC, id DESC").Offset((page - 1) * size).Limit(size).Find(&rows).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"total": total, "items": rows})
}

// POST /admin/payments/:id/approve
func (h *PaymentHandler) Approve(c echo.Context) error {
	return h.resolve(c, models.PaymentApproved)
}

// POST /admin/payments/:id/reject
func (h *PaymentHandler) Reject(c echo.Context) error {
	return h.resolve(c, models.PaymentRejected)
}

// resolve moves a pending payment to a terminal state. Approved and
// rejected are final: a second attempt conflicts instead of silently
// rewriting history. The guard re-checks status inside the UPDATE so
// two racing admins cannot both win.
func (h *PaymentHandler) resolve(c echo.Context, to string) error {
	id, _ := middlewares.CurrentIdentity(c)

	var rec models.Payment
	if err := database.DB.First(&rec, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("PAYMENT_NOT_FOUND", "payment not found")
		}
		return dbErr(err)
	}
	if !rec.CanTransition(to) {
		return apperr.Conflict("PAYMENT_ALREADY_RESOLVED", "payment is already "+rec.Status)
	}

	now := time.Now()
	res := database.DB.Model(&models.Payment{}).
		Where("id = ? AND status = ?", rec.ID, models.PaymentPending).
		Updates(map[string]any{
			"status":      to,
			"approved_by": id.SubjectID,
			"approved_at": &now,
		})
	if err := guardedUpdate(res, "PAYMENT_ALREADY_RESOLVED", "payment was resolved concurrently"); err != nil {
		return err
	}

	rec.Status = to
	rec.ApprovedBy = id.SubjectID
	rec.ApprovedAt = &now
	return c.JSON(http.StatusOK, rec)
}

// GET /parent/children/:student_id/payments
func (h *PaymentHandler) ListForChild(c echo.Context) error {
	id, _ := middlewares.CurrentIdentity(c)
	studentID := c.Param("student_id")

	owns, err := parentOwnsStudent(id.SubjectID, studentID)
	if err != nil {
		return dbErr(err)
	}
	if !owns {
		return apperr.Forbidden()
	}

	var rows []models.Payment
	if err := database.DB.Where("student_id = ?", studentID).
		Order("paid_at DESC").Find(&rows).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, rows)
}
