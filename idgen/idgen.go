// Package idgen produces the human-readable display codes used across
// the school records: WCU{YY}{NNNN} for students, PAR{NNN} for parents
// and LIB{NNN} for library books. The next code is derived from the most
// recently inserted row's trailing digit run, incremented and zero-padded.
//
// Callers must run generation and the insert in the same transaction and
// retry on gorm.ErrDuplicatedKey; the unique index on the code column is
// the final arbiter under concurrent registrations.
package idgen

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/gediyoneyasu/WCU-CS-management/models"
)

const (
	studentPrefix = "WCU"
	studentWidth  = 4
	parentPrefix  = "PAR"
	parentWidth   = 3
	bookPrefix    = "LIB"
	bookWidth     = 3
)

var errBadCode = errors.New("idgen: malformed code")

// nextCode computes the successor of last within prefix's sequence.
// last may be empty (no rows yet), which yields the sequence minimum.
func nextCode(prefix, last string, width int) (string, error) {
	if last == "" {
		return prefix + pad(1, width), nil
	}
	if len(last) < width {
		return "", errBadCode
	}
	n, err := strconv.Atoi(last[len(last)-width:])
	if err != nil {
		return "", errBadCode
	}
	return prefix + pad(n+1, width), nil
}

func pad(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

// StudentPrefix returns the year-scoped student code prefix, e.g. "WCU25".
func StudentPrefix(now time.Time) string {
	return fmt.Sprintf("%s%02d", studentPrefix, now.Year()%100)
}

// NextStudentID generates the next student code for the current year.
// The sequence is scoped per year prefix: only codes starting with
// WCU{YY} are considered, so the counter restarts at 0001 each January
// and codes from earlier years can never collide with new ones.
func NextStudentID(tx *gorm.DB, now time.Time) (string, error) {
	prefix := StudentPrefix(now)
	var last models.Student
	err := tx.Where("student_id LIKE ?", prefix+"%").
		Order("id DESC").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nextCode(prefix, "", studentWidth)
	}
	if err != nil {
		return "", err
	}
	return nextCode(prefix, last.StudentID, studentWidth)
}

// NextParentID generates the next PAR{NNN} code.
func NextParentID(tx *gorm.DB) (string, error) {
	var last models.Parent
	err := tx.Order("id DESC").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nextCode(parentPrefix, "", parentWidth)
	}
	if err != nil {
		return "", err
	}
	return nextCode(parentPrefix, last.ParentID, parentWidth)
}

// NextBookID generates the next LIB{NNN} code.
func NextBookID(tx *gorm.DB) (string, error) {
	var last models.Book
	err := tx.Order("id DESC").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nextCode(bookPrefix, "", bookWidth)
	}
	if err != nil {
		return "", err
	}
	return nextCode(bookPrefix, last.BookID, bookWidth)
}
