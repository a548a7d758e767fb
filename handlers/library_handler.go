package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gediyoneyasu/WCU-CS-management/apperr"
	"github.com/gediyoneyasu/WCU-CS-management/database"
	"github.com/gediyoneyasu/WCU-CS-management/idgen"
	"github.com/gediyoneyasu/WCU-CS-management/models"
)

type LibraryHandler struct{}

func NewLibraryHandler() *LibraryHandler { return &LibraryHandler{} }

// POST /admin/library/books (multipart; pdf and cover optional)
func (h *LibraryHandler) CreateBook(c echo.Context) error {
	title := strings.TrimSpace(c.FormValue("title"))
	author := strings.TrimSpace(c.FormValue("author"))
	isbn := strings.TrimSpace(c.FormValue("isbn"))
	category := strings.TrimSpace(c.FormValue("category"))
	gradeLevel := strings.TrimSpace(c.FormValue("grade_level"))
	total := atoiOr(c.FormValue("total_copies"), 0)

	errs := map[string]string{}
	if title == "" {
		errs["title"] = "title is required"
	}
	if total < 1 {
		errs["total_copies"] = "total_copies must be at least 1"
	}
	if gradeLevel != "" && !models.ValidGrade(gradeLevel) {
		errs["grade_level"] = gradeHint
	}
	if len(errs) > 0 {
		return apperr.Validation(errs)
	}

	// book PDFs may be large; covers use the general cap
	pdf, err := saveUpload(c, "pdf", "library", maxLibraryUploadSize)
	if err != nil {
		return err
	}
	cover, err := saveUpload(c, "cover", "covers", maxUploadSize)
	if err != nil {
		return err
	}

	var rec models.Book
	err = createWithGeneratedID(func(tx *gorm.DB) error {
		bid, err := idgen.NextBookID(tx)
		if err != nil {
			return err
		}
		rec = models.Book{
			BookID:          bid,
			Title:           title,
			Author:          author,
			ISBN:            isbn,
			Category:        category,
			GradeLevel:      gradeLevel,
			TotalCopies:     total,
			AvailableCopies: total,
			FilePath:        pdf,
			CoverPath:       cover,
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusCreated, rec)
}

// GET /library/books?q=&category=&grade_level=
func (h *LibraryHandler) ListBooks(c echo.Context) error {
	tx := database.DB.Model(&models.Book{})
	if v := strings.TrimSpace(c.QueryParam("category")); v != "" {
		tx = tx.Where("category = ?", v)
	}
	if v := strings.TrimSpace(c.QueryParam("grade_level")); v != "" {
		tx = tx.Where("grade_level = ?", v)
	}
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(isbn) LIKE ?", like, like, like)
	}
	var rows []models.Book
	if err := tx.Order("book_id ASC").Find(&rows).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, rows)
}

// POST /admin/library/borrow {book_id, student_id}
//
// The book row is locked for the check-and-decrement so concurrent
// borrows of the last copy cannot both succeed; available_copies never
// leaves the 0..total range.
func (h *LibraryHandler) Borrow(c echo.Context) error {
	var req struct {
		BookID    string `json:"book_id"    form:"book_id"`
		StudentID string `json:"student_id" form:"student_id"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.ValidationMsg("INVALID_PAYLOAD", "invalid payload")
	}
	req.BookID = strings.TrimSpace(req.BookID)
	req.StudentID = strings.TrimSpace(req.StudentID)
	if req.BookID == "" || req.StudentID == "" {
		return apperr.ValidationMsg("MISSING_FIELDS", "book_id and student_id are required")
	}

	var student models.Student
	if err := database.DB.Where("student_id = ?", req.StudentID).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("STUDENT_NOT_FOUND", "student not found")
		}
		return dbErr(err)
	}

	var loan models.BookLoan
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var book models.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("book_id = ?", req.BookID).First(&book).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("BOOK_NOT_FOUND", "book not found")
			}
			return err
		}
		if book.AvailableCopies < 1 {
			return apperr.Conflict("NO_COPIES_AVAILABLE", "all copies are currently borrowed")
		}
		if err := tx.Model(&book).
			Update("available_copies", book.AvailableCopies-1).Error; err != nil {
			return err
		}
		loan = models.BookLoan{BookID: book.BookID, StudentID: student.StudentID}
		return tx.Create(&loan).Error
	})
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return err
		}
		return dbErr(err)
	}
	return c.JSON(http.StatusCreated, loan)
}

// POST /admin/library/return {book_id, student_id}
func (h *LibraryHandler) Return(c echo.Context) error {
	var req struct {
		BookID    string `json:"book_id"    form:"book_id"`
		StudentID string `json:"student_id" form:"student_id"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.ValidationMsg("INVALID_PAYLOAD", "invalid payload")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var loan models.BookLoan
		err := tx.Where("book_id = ? AND student_id = ? AND returned_at IS NULL",
			strings.TrimSpace(req.BookID), strings.TrimSpace(req.StudentID)).
			Order("borrowed_at ASC").First(&loan).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("LOAN_NOT_FOUND", "no open loan for this book and student")
		}
		if err != nil {
			return err
		}

		// re-check open state in the UPDATE so a racing double return
		// cannot close the same loan twice and bump availability for both
		now := time.Now()
		res := tx.Model(&models.BookLoan{}).
			Where("id = ? AND returned_at IS NULL", loan.ID).
			Update("returned_at", &now)
		if err := guardedUpdate(res, "LOAN_ALREADY_RETURNED", "loan was already returned"); err != nil {
			return err
		}

		var book models.Book
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("book_id = ?", loan.BookID).First(&book).Error; err != nil {
			return err
		}
		if book.AvailableCopies < book.TotalCopies {
			return tx.Model(&book).
				Update("available_copies", book.AvailableCopies+1).Error
		}
		return nil
	})
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return err
		}
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

// GET /admin/library/loans?student_id=&open=true
func (h *LibraryHandler) ListLoans(c echo.Context) error {
	tx := database.DB.Model(&models.BookLoan{})
	if v := strings.TrimSpace(c.QueryParam("student_id")); v != "" {
		tx = tx.Where("student_id = ?", v)
	}
	if c.QueryParam("open") == "true" {
		tx = tx.Where("returned_at IS NULL")
	}
	var rows []models.BookLoan
	if err := tx.Order("borrowed_at DESC").Find(&rows).Error; err != nil {
		return dbErr(err)
	}
	return c.JSON(http.StatusOK, rows)
}
