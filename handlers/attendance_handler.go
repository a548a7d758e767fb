package handlers

import (
	"hash/fnv"
	"io"
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

type AttendanceHandler struct{}

func NewAttendanceHandler() *AttendanceHandler { return &AttendanceHandler{} }

// attendanceLockKey derives the advisory lock key that serializes
// replaces for one (teacher, date). The NUL separator keeps adjacent
// pairs like ("T1", "1...") and ("T11", "...") from colliding.
func attendanceLockKey(teacherID, date string) int64 {
	h := fnv.New64a()
	io.WriteString(h, teacherID)
	io.WriteString(h, "\x00")
	io.WriteString(h, date)
	return int64(h.Sum64())
}

type attendanceEntry struct {
	StudentID string `json:"student_id" form:"student_id"`
	Status    string `json:"status"     form:"status"`
	Note      string `json:"note"       form:"note"`
}

type recordAttendanceReq struct {
	Date    string            `json:"date" form:"date"`
	Entries []attendanceEntry `json:"entries"`
}

// buildAttendanceRows turns a submission into the replacement row set
// for one (teacher, date). Entries behave as a student→status map:
// a repeated student keeps only the last entry. Returns field errors
// when the date, a status or a student code is malformed.
func buildAttendanceRows(teacherID, date string, entries []attendanceEntry) ([]models.Attendance, map[string]string) {
	errs := map[string]string{}

	if _, err := time.Parse("2006-01-02", date); err != nil {
		errs["date"] = "date must be YYYY-MM-DD"
	}
	if len(entries) == 0 {
		errs["entries"] = "at least one student entry is required"
	}

	byStudent := map[string]models.Attendance{}
	order := make([]string, 0, len(entries))
	for _, e := range entries {
		sid := strings.TrimSpace(e.StudentID)
		status := strings.TrimSpace(e.Status)
		if sid == "" {
			errs["entries"] = "entry with empty student_id"
			continue
		}
		if !models.ValidAttendanceStatus(status) {
			errs[sid] = "status must be Present, Absent or Other"
			continue
		}
		if _, seen := byStudent[sid]; !seen {
			order = append(order, sid)
		}
		byStudent[sid] = models.Attendance{
			StudentID: sid,
			Date:      date,
			Status:    status,
			TeacherID: teacherID,
			Note:      strings.TrimSpace(e.Note),
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	rows := make([]models.Attendance, 0, len(byStudent))
	for _, sid := range order {
		rows = append(rows, byStudent[sid])
	}
	return rows, nil
}

// POST /teacher/attendance
//
// Full replace: the teacher's existing records for the day are dropped
// and the submitted set inserted, all in one transaction, so a reader
// only ever sees a complete submission. Students omitted from the map
// simply have no record for that teacher/day.
func (h *AttendanceHandler) Record(c echo.Context) error {
	id, _ := middlewares.CurrentIdentity(c)

	var req recordAttendanceReq
	if err := c.Bind(&req); err != nil {
		return apperr.ValidationMsg("INVALID_PAYLOAD", "invalid payload")
	}
	date := strings.TrimSpace(req.Date)
	rows, errs := buildAttendanceRows(id.SubjectID, date, req.Entries)
	if errs != nil {
		return apperr.Validation(errs)
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Serialize replaces for this (teacher, date): under READ
		// COMMITTED, two unserialized delete+insert pairs would each
		// miss the other's rows and commit a union of both maps.
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)",
			attendanceLockKey(id.SubjectID, date)).Error; err != nil {
			return err
		}
		if err := tx.Where("teacher_id = ? AND date = ?", id.SubjectID, date).
			Delete(&models.Attendance{}).Error; err != nil {
			return err
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return dbErr(err)
	}

	return c.JSON(http.StatusOK, map[string]any{"date": date, "recorded": len(rows)})
}

// GET /teacher/attendance?date=&student_id=&status=
//
// Teachers see their own records; an explicit teacher_id filter is
// honored for admins looking across the school.
func (h *AttendanceHandler) List(c echo.Context) error {
	id, _ := middlewares.CurrentIdentity(c)

	date := strings.TrimSpace(c.QueryParam("date"))
	studentID := strings.TrimSpace(c.QueryParam("student_id"))
	status := strings.TrimSpace(c.QueryParam("status"))
	teacherID := strings.TrimSpace(c.QueryParam("teacher_id"))
	if teacherID == "" || id.Role != models.RoleAdmin {
		teacherID = id.SubjectID
	}

	tx := database.DB.Model(&models.Attendance{}).Where("teacher_id = ?", teacherID)
	if date != "" {
		tx = tx.Where("date = ?", date)
	}
	if studentID != "" {
		tx = tx.Where("student_id = ?", studentID)
	}
	if status != "" {
		tx = tx.Where("status = ?", status)
	}

	var rows []models.Attendance
	if err := tx.Order("date ASC, student_id ASC").Find(&rows).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /parent/children/:student_id/attendance?from=&to=
func (h *AttendanceHandler) ListForChild(c echo.Context) error {
	id, _ := middlewares.CurrentIdentity(c)
	studentID := c.Param("student_id")

	owns, err := parentOwnsStudent(id.SubjectID, studentID)
	if err != nil {
		return dbErr(err)
	}
	if !owns {
		return apperr.Forbidden()
	}

	tx := database.DB.Model(&models.Attendance{}).Where("student_id = ?", studentID)
	if from := strings.TrimSpace(c.QueryParam("from")); from != "" {
		tx = tx.Where("date >= ?", from)
	}
	if to := strings.TrimSpace(c.QueryParam("to")); to != "" {
		tx = tx.Where("date <= ?", to)
	}

	var rows []models.Attendance
	if err := tx.Order("date DESC").Find(&rows).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, rows)
}
