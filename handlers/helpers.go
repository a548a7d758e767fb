package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/gediyoneyasu/WCU-CS-management/apperr"
	"github.com/gediyoneyasu/WCU-CS-management/database"
	"github.com/gediyoneyasu/WCU-CS-management/models"
)

var validate = validator.New()

var gradeHint = "grade must be one of " + strings.Join(models.Grades(), ", ")

// convert string -> int; fall back to def when it does not parse
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// dbErr hides raw database failures behind the Upstream taxonomy.
func dbErr(err error) error { return apperr.Upstream(err) }

// dupErr maps a unique index violation to the given Conflict, leaving
// the existing row untouched; anything else stays an upstream failure.
func dupErr(err error, code, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(code, msg)
	}
	return dbErr(err)
}

// guardedUpdate finishes a conditional update whose WHERE re-checks
// state. Zero matched rows means a concurrent writer got there first,
// which surfaces as the given Conflict rather than a silent rewrite.
func guardedUpdate(res *gorm.DB, code, msg string) error {
	if res.Error != nil {
		return dbErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.Conflict(code, msg)
	}
	return nil
}

// createWithGeneratedID retries a generate-and-insert transaction when
// two requests race to the same display code. The unique index turns
// the loser's insert into gorm.ErrDuplicatedKey; a fresh transaction
// re-reads the last row and picks the next free code.
func createWithGeneratedID(fn func(tx *gorm.DB) error) error {
	const attempts = 3
	var err error
	for i := 0; i < attempts; i++ {
		err = database.DB.Transaction(fn)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
	}
	return err
}

// parentOwnsStudent checks the join table before exposing a child's
// records to a parent session.
func parentOwnsStudent(parentID, studentID string) (bool, error) {
	var n int64
	err := database.DB.Model(&models.ParentStudent{}).
		Where("parent_id = ? AND student_id = ?", parentID, studentID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// fieldErrors flattens validator.v10 output into the field→message map
// the error handler renders.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = "failed on '" + fe.Tag() + "'"
		}
		return out
	}
	out["_"] = err.Error()
	return out
}
