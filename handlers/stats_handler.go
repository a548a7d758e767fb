package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gediyoneyasu/WCU-CS-management/database"
	"github.com/gediyoneyasu/WCU-CS-management/models"
)

type StatsHandler struct{}

func NewStatsHandler() *StatsHandler { return &StatsHandler{} }

// GET /api/stats
//
// Live counters polled by the landing page on a fixed interval.
func (h *StatsHandler) Live(c echo.Context) error {
	var (
		cntStudents        int64
		cntTeachers        int64
		cntPayments        int64
		cntPendingPayments int64
		cntTodayAttendance int64
	)

	today := time.Now().Format("2006-01-02")

	if err := database.DB.Model(&models.Student{}).
		Where("status = ?", models.StudentActive).Count(&cntStudents).Error; err != nil {
		return dbErr(err)
	}
	if err := database.DB.Model(&models.Teacher{}).Count(&cntTeachers).Error; err != nil {
		return dbErr(err)
	}
	if err := database.DB.Model(&models.Payment{}).Count(&cntPayments).Error; err != nil {
		return dbErr(err)
	}
	if err := database.DB.Model(&models.Payment{}).
		Where("status = ?", models.PaymentPending).Count(&cntPendingPayments).Error; err != nil {
		return dbErr(err)
	}
	if err := database.DB.Model(&models.Attendance{}).
		Where("date = ?", today).
		Distinct("student_id").Count(&cntTodayAttendance).Error; err != nil {
		return dbErr(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"students":         cntStudents,
		"teachers":         cntTeachers,
		"payments":         cntPayments,
		"pending_payments": cntPendingPayments,
		"today_attendance": cntTodayAttendance,
		"as_of":            time.Now().UTC().Format(time.RFC3339),
	})
}
